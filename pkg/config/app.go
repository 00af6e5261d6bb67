package config

import "time"

var AppVersion = "DEVELOPMENT"

const (
	AppName       = "consolemode"
	LogFile       = "consolemode.log"
	CfgFile       = "config.toml"
	DecodeTimeout = 10 * time.Second
)
