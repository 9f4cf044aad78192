package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"deedles.dev/wc/internal/compositor"
	"deedles.dev/wc/internal/config"
	"deedles.dev/wc/internal/util"
	"deedles.dev/wlr"
)

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "wc", "config.yaml")
}

func main() {
	startup := flag.String("c", "", "command to run after startup")
	debug := flag.Bool("d", false, "turn on debug logging")
	configPath := flag.String("config", defaultConfigPath(), "path to the configuration file")
	bg := util.ColorFlag(flag.CommandLine, "bg", "background color, overriding the configuration file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %v [options]\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 0 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	initLog(level)
	compositor.SetLogger(slog.New(&wlrHandler{level: level}))

	conf, err := config.Load(*configPath)
	if err != nil {
		wlr.Log(wlr.Error, "load config: %v", err)
		os.Exit(1)
	}
	if c, ok := bg(); ok {
		conf.Background = c
	}

	server := Server{
		Startup: *startup,
		Config:  conf,
	}
	err = server.Init()
	if err != nil {
		wlr.Log(wlr.Error, "init: %v", err)
		os.Exit(1)
	}

	err = server.Run()
	if err != nil {
		wlr.Log(wlr.Error, "run: %v", err)
		os.Exit(1)
	}
}
