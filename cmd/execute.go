package cmd

import (
	"os"
	"path/filepath"

	"chogo/ast"
	"chogo/codegen"
	"chogo/config"
	"chogo/logging"

	"github.com/ComedicChimera/olive"
)

// Version is the chogo version string.
const Version = "0.1.0"

// Execute runs the main `chogo` application.
func Execute() {
	// set up the argument parser and all its commands and arguments
	cli := olive.NewCLI("chogo", "chogo compiles typed program trees to RISC-V assembly", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false,
		[]string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	genCmd := cli.AddSubcommand("gen", "generate assembly from a typed tree", true)
	genCmd.AddPrimaryArg("tree-path", "the path to the serialized typed tree", true)
	genCmd.AddStringArg("output", "o", "the path of the output assembly file", false)
	genCmd.AddStringArg("config", "c", "the path to the backend config file", false)

	cli.AddSubcommand("version", "print the chogo version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		logging.PrintErrorMessage("CLI Usage Error", err)
		return
	}

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "gen":
		execGenCommand(subResult, result.Arguments["loglevel"].(string))
	case "version":
		logging.PrintInfoMessage("chogo Version", Version)
	}
}

// execGenCommand executes the gen subcommand and handles all its errors.
func execGenCommand(result *olive.ArgParseResult, loglevel string) {
	treeRelPath, _ := result.PrimaryArg()

	treePath, err := filepath.Abs(treeRelPath)
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return
	}

	// load the backend configuration
	configPath := config.FileName
	if configArgVal, ok := result.Arguments["config"]; ok {
		configPath = configArgVal.(string)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		logging.PrintErrorMessage("Config Error", err)
		return
	}

	// the command line log level wins over the configured one
	if loglevel != "" {
		cfg.LogLevel = loglevel
	}
	logging.Initialize(cfg.LogLevel)

	if outputArgVal, ok := result.Arguments["output"]; ok {
		cfg.OutputPath = outputArgVal.(string)
	}

	// decode the typed tree
	data, err := os.ReadFile(treePath)
	if err != nil {
		logging.PrintErrorMessage("Tree Load Error", err)
		return
	}
	program, err := ast.ParseProgram(data)
	if err != nil {
		logging.PrintErrorMessage("Tree Decode Error", err)
		return
	}

	// generate the assembly
	backend := codegen.NewBackend()
	cg := codegen.NewCodeGen(backend, codegen.UnimplementedEmitter{}, &codegen.Options{
		HeapSizeBytes: cfg.HeapSizeBytes(),
		LibDir:        cfg.LibDir,
	})
	asm, err := cg.Generate(program)
	if err != nil {
		logging.PrintErrorMessage("Code Generation Error", err)
		return
	}

	if err := os.WriteFile(cfg.OutputPath, []byte(asm), 0644); err != nil {
		logging.PrintErrorMessage("Output Error", err)
		return
	}
	logging.PrintInfoMessage("Compilation Finished", cfg.OutputPath)
}
