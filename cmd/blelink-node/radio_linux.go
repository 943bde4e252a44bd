//go:build linux

package main

import (
	"log/slog"

	"github.com/blelink/blelink-go/pkg/radio"
	"github.com/blelink/blelink-go/pkg/radio/bluez"
)

func newBluezRadio(mtu int, logger *slog.Logger) (radio.Radio, error) {
	return bluez.New(bluez.Config{MTU: mtu, Logger: logger})
}
