// Package config 加载代码生成器的配置
//
// 优先级（低到高）: 默认值 < asmgen.toml < 环境变量 < 命令行参数
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/xyproto/env/v2"
)

// 常量定义
const (
	ConfigFileName = "asmgen.toml" // 配置文件名
	DefaultOutput  = "assembly.s"  // 默认输出文件
)

// 环境变量
const (
	EnvOutput    = "ASMGEN_OUTPUT"
	EnvVerbose   = "ASMGEN_VERBOSE"
	EnvLanguage  = "ASMGEN_LANG"
	EnvRegisters = "ASMGEN_REGISTERS"
	EnvComments  = "ASMGEN_COMMENTS"
)

// Config 代码生成配置
type Config struct {
	// Output 输出汇编文件路径
	Output string `toml:"output"`

	// Verbose 输出偏移量和分配决策的调试日志
	Verbose bool `toml:"verbose"`

	// Language 诊断信息语言 (en / zh)
	Language string `toml:"language"`

	// UseRegisters 中间结果优先放在空闲寄存器，关闭后全部溢出到栈槽
	UseRegisters bool `toml:"use_registers"`

	// Comments 在汇编中输出注释
	Comments bool `toml:"comments"`
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Output:       DefaultOutput,
		Language:     "en",
		UseRegisters: true,
		Comments:     true,
	}
}

// Load 从文件加载配置，文件中未出现的字段保持默认值
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse 解析 TOML 配置内容
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Save 保存配置到文件
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ApplyEnv 用环境变量覆盖配置
func (c *Config) ApplyEnv() {
	c.Output = env.Str(EnvOutput, c.Output)
	c.Language = env.Str(EnvLanguage, c.Language)
	if env.Has(EnvVerbose) {
		c.Verbose = env.Bool(EnvVerbose)
	}
	if env.Has(EnvRegisters) {
		c.UseRegisters = env.Bool(EnvRegisters)
	}
	if env.Has(EnvComments) {
		c.Comments = env.Bool(EnvComments)
	}
}

// Resolve 查找并加载配置文件，再应用环境变量
// startPath 为空或找不到配置文件时使用默认值
func Resolve(startPath string) (*Config, string, error) {
	cfg := Default()
	path := ""
	if startPath != "" {
		path = FindConfigFile(startPath)
	}
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, path, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	return cfg, path, nil
}

// FindConfigFile 从指定路径向上查找配置文件
// 返回配置文件的完整路径，如果找不到则返回空字符串
func FindConfigFile(startPath string) string {
	info, err := os.Stat(startPath)
	if err != nil {
		return ""
	}

	dir := startPath
	if !info.IsDir() {
		dir = filepath.Dir(startPath)
	}

	dir, err = filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// 已到达根目录
			return ""
		}
		dir = parent
	}
}
