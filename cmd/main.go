package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/brettbedarf/vfstree/codec"
	"github.com/brettbedarf/vfstree/config"
	"github.com/brettbedarf/vfstree/filesystem"
	"github.com/brettbedarf/vfstree/internal/util"
	"github.com/brettbedarf/vfstree/mount"
	"github.com/brettbedarf/vfstree/requests"
	"github.com/brettbedarf/vfstree/workspace"
)

func main() {
	// Parse command line arguments
	var (
		configPath string
		nodesDef   string
		treePath   string
		outPath    string
		printTree  bool
		umount     bool
		verbose    int
	)
	flag.StringVar(&configPath, "config", "", "Path to config file (.yaml, .yml or .json)")
	flag.StringVar(&configPath, "c", "", "--config (shorthand)")
	flag.StringVar(&nodesDef, "nodes", "", "Path to a JSON file of nodes to create")
	flag.StringVar(&nodesDef, "n", "", "--nodes (shorthand)")
	flag.StringVar(&treePath, "tree", "", "Path to a saved tree (.json, .yaml or .yml) to start from")
	flag.StringVar(&treePath, "t", "", "--tree (shorthand)")
	flag.StringVar(&outPath, "out", "", "Save the resulting tree to this path (.json, .yaml or .yml)")
	flag.StringVar(&outPath, "o", "", "--out (shorthand)")
	flag.BoolVar(&printTree, "print", false, "Print the resulting tree as YAML to stdout")
	flag.BoolVar(&printTree, "p", false, "--print (shorthand)")
	flag.BoolVar(&umount, "umount", false,
		"Unmount the fs first if needed before mounting again. Useful for debuggers that don't exit properly.")
	flag.BoolVar(&umount, "u", false, "--umount (shorthand)")
	flag.IntVar(&verbose, "verbose", 0, "Log verbosity level between 1 (error) and 5 (trace). Default is 3 (info).")
	flag.IntVar(&verbose, "v", 0, "--verbose (shorthand)")
	flag.Parse()

	// Config file first so the flag wins over it
	cfg := config.NewDefaultConfig()
	if configPath != "" {
		fileCfg, err := config.NewConfigFromFile(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config %s: %v\n", configPath, err)
			os.Exit(1)
		}
		cfg = fileCfg
	}
	if verbose != 0 {
		cfg.Merge(&config.ConfigOverride{LogLvl: &verbose})
	}

	// Initialize logger
	util.InitializeLogger(os.Stderr, cfg.LogLvl)
	logger := util.GetLogger("main")

	mnt := flag.Arg(0)
	logger.Info().
		Str("config", configPath).
		Str("nodes", nodesDef).
		Str("tree", treePath).
		Str("mnt", mnt).
		Msg("vfstree initializing")

	engine, err := filesystem.NewEngineFromConfig(cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("generator", cfg.IDGenerator).Msg("Failed to create engine")
	}
	ws, _ := workspace.NewManager(cfg, engine).Open(config.DefaultName)

	// Starting tree
	if treePath != "" {
		tree, err := codec.LoadFile(treePath)
		if err != nil {
			logger.Fatal().Err(err).Str("tree", treePath).Msg("Failed to load tree")
		}
		ws.Replace(tree)
		logger.Debug().Str("tree", treePath).Int("nodes", filesystem.CountNodes(tree)).Msg("Tree loaded")
	}

	// Seed nodes
	if nodesDef != "" {
		defData, err := os.ReadFile(nodesDef)
		if err != nil {
			logger.Fatal().Err(err).Str("nodes", nodesDef).Msg("Failed to read nodes file")
		}
		reqs, err := requests.UnmarshalNodeRequests(defData)
		if err != nil {
			logger.Fatal().Err(err).Str("nodes", nodesDef).Msg("Failed to unmarshal nodes")
		}
		before := filesystem.CountNodes(ws.Tree())
		tree := ws.Replace(requests.Build(engine, ws.Tree(), "", reqs))
		logger.Info().Int("added", filesystem.CountNodes(tree)-before).Msg("Added new nodes to tree")
	} else if treePath == "" {
		logger.Warn().Msg("No nodes or tree file provided; starting from an empty root")
	}

	tree := ws.Tree()
	if printTree {
		data, err := codec.Marshal(tree, codec.YAMLFormat)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to marshal tree")
		}
		if _, err := os.Stdout.Write(data); err != nil {
			logger.Fatal().Err(err).Msg("Failed to print tree")
		}
	}
	if outPath != "" {
		if err := codec.SaveFile(outPath, tree); err != nil {
			logger.Fatal().Err(err).Str("out", outPath).Msg("Failed to save tree")
		}
		logger.Info().Str("out", outPath).Msg("Tree saved")
	}

	if mnt == "" {
		return
	}

	// Try unmount if requested
	if umount { // send cli command
		cmd := exec.Command("fusermount", "-u", mnt)
		// we ignore error here if not already mounted
		cmd.Run() // nolint:errcheck
	}

	srv, err := mount.Mount(tree, mnt, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to mount filesystem")
	}

	// Setup signal handling for graceful shutdown
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	unmounted := make(chan struct{})
	go func() {
		srv.Wait()
		close(unmounted)
	}()

	logger.Info().Str("mountpoint", mnt).Msg("Filesystem mounted successfully")

	// Wait for termination signal or an external unmount
	select {
	case sig := <-signalChan:
		logger.Info().Str("signal", sig.String()).Msg("Received signal, unmounting filesystem")
	case <-unmounted:
		logger.Info().Msg("Filesystem unmounted externally")
		return
	}

	// Unmount the filesystem
	if err := srv.Unmount(); err != nil {
		logger.Error().Err(err).Msg("Failed to unmount filesystem")
	} else {
		logger.Info().Msg("Filesystem unmounted successfully")
	}
}
