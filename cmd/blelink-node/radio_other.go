//go:build !linux

package main

import (
	"errors"
	"log/slog"

	"github.com/blelink/blelink-go/pkg/radio"
)

func newBluezRadio(int, *slog.Logger) (radio.Radio, error) {
	return nil, errors.New("the bluez radio is only available on linux; use -radio net")
}
