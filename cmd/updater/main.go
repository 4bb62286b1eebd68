package main

import (
	"flag"
	"log"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"github.com/vipowerus/timetable/internal/updater"
)

var (
	configPath string
)

func init() {
	flag.StringVar(&configPath, "config-path", "configs/updater.toml", "path to config file")
}

func main() {
	flag.Parse()

	config := updater.NewConfig()
	_, err := toml.DecodeFile(configPath, config)
	if err != nil {
		log.Fatal(err)
	}

	logger := logrus.New()
	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	logger.SetLevel(level)

	u := updater.New(config, logger)
	if err := u.Run(); err != nil {
		log.Fatal(err)
	}
}
