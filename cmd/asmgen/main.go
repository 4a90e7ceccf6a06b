package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tangzhangming/asmgen/internal/ast"
	"github.com/tangzhangming/asmgen/internal/codegen"
	"github.com/tangzhangming/asmgen/internal/config"
	"github.com/tangzhangming/asmgen/internal/errors"
	"github.com/tangzhangming/asmgen/internal/i18n"
)

var (
	outputPath  = flag.String("o", "", "Output assembly file (default assembly.s)")
	configPath  = flag.String("config", "", "Config file (default: search asmgen.toml upward)")
	verbose     = flag.Bool("v", false, "Log frame offsets and allocation decisions")
	language    = flag.String("lang", "", "Diagnostic language (en, zh)")
	showAST     = flag.Bool("ast", false, "Dump the decoded AST and exit")
	noRegisters = flag.Bool("no-registers", false, "Keep every temporary in a frame slot")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println(i18n.T(i18n.CliUsage))
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		os.Exit(0)
	}
	os.Exit(run(flag.Arg(0)))
}

func run(input string) int {
	cfg, err := loadConfig(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if _, ok := i18n.ParseLanguage(cfg.Language); !ok {
		fmt.Fprintln(os.Stderr, i18n.T(i18n.CliBadLanguage, cfg.Language))
	}
	i18n.SetLanguageFromString(cfg.Language)

	logger := newLogger(cfg.Verbose)
	defer logger.Sync() //nolint:errcheck

	prog, err := readProgram(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, i18n.T(i18n.CliReadInput, input, err))
		return 1
	}

	if *showAST {
		spew.Dump(prog)
		return 0
	}

	g := codegen.NewGenerator(&codegen.Options{
		UseRegisters: cfg.UseRegisters,
		Comments:     cfg.Comments,
		Conv:         codegen.SystemV,
		Logger:       logger,
	})

	err = writeAssembly(cfg.Output, g, prog)

	f := errors.NewFormatter()
	for _, w := range g.Warnings() {
		fmt.Fprint(os.Stderr, f.Format(w))
	}
	if err != nil {
		fmt.Fprint(os.Stderr, f.FormatError(err))
		return 1
	}

	logger.Info(i18n.T(i18n.CliWritten, cfg.Output))
	return 0
}

// loadConfig 默认值 < 配置文件 < 环境变量 < 命令行参数
func loadConfig(input string) (*config.Config, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if *configPath != "" {
		path = *configPath
		cfg, err = config.Load(path)
		if err == nil {
			cfg.ApplyEnv()
		}
	} else {
		cfg, path, err = config.Resolve(input)
	}
	if err != nil {
		return nil, fmt.Errorf("%s", i18n.T(i18n.CliLoadConfig, path, err))
	}

	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "o":
			cfg.Output = *outputPath
		case "v":
			cfg.Verbose = *verbose
		case "lang":
			cfg.Language = *language
		case "no-registers":
			cfg.UseRegisters = !*noRegisters
		}
	})
	return cfg, nil
}

func newLogger(verbose bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		cfg.Encoding = "console"
		logger, err = cfg.Build()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// readProgram 读取 JSON 语法树，"-" 表示标准输入
func readProgram(path string) (*ast.Program, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return ast.Decode(r)
}

func writeAssembly(path string, g *codegen.Generator, prog *ast.Program) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%s", i18n.T(i18n.CliCreateOutput, path, err))
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	return g.Generate(f, prog)
}
