// Package kconfig probes ZMK firmware settings out of a Kconfig-style .conf
// file. Probing is substring and regex based, like the keymap side: a value
// missing from the file falls back to the firmware default rather than being
// an error.
package kconfig

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Firmware defaults applied when a setting is absent from the conf file.
const (
	defaultSleepTimeoutMs = "3600000"
	defaultIdleTimeoutMs  = "15000"
	defaultDebounceMs     = "5"
	defaultFlag           = "n"
)

// txPowerBoost marks the raised bluetooth transmit power option. It is
// probed as a plain substring because the option name varies by SoC prefix.
const txPowerBoost = "TX_PWR_PLUS_8=y"

var (
	sleepTimeoutRe    = regexp.MustCompile(`CONFIG_ZMK_IDLE_SLEEP_TIMEOUT=(\d+)`)
	idleTimeoutRe     = regexp.MustCompile(`CONFIG_ZMK_IDLE_TIMEOUT=(\d+)`)
	displayRe         = regexp.MustCompile(`CONFIG_ZMK_DISPLAY=(\w)`)
	rgbRe             = regexp.MustCompile(`CONFIG_ZMK_RGB_UNDERGLOW=(\w)`)
	rgbOnStartRe      = regexp.MustCompile(`CONFIG_ZMK_RGB_UNDERGLOW_ON_START=(\w)`)
	pointingRe        = regexp.MustCompile(`CONFIG_ZMK_POINTING=(\w)`)
	debouncePressRe   = regexp.MustCompile(`CONFIG_ZMK_KSCAN_DEBOUNCE_PRESS_MS=(\d+)`)
	debounceReleaseRe = regexp.MustCompile(`CONFIG_ZMK_KSCAN_DEBOUNCE_RELEASE_MS=(\d+)`)
)

// Setting is one probed configuration value, formatted for display.
type Setting struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Notes string `json:"notes,omitempty"`
}

// Probe extracts the display-relevant firmware settings from conf file
// content. The result order is fixed and every row is always present.
func Probe(content string) []Setting {
	get := func(re *regexp.Regexp, def string) string {
		if m := re.FindStringSubmatch(content); m != nil {
			return m[1]
		}
		return def
	}

	return []Setting{
		{Name: "Sleep timeout", Value: scaled(get(sleepTimeoutRe, defaultSleepTimeoutMs), 60000, "min"), Notes: "Deep sleep"},
		{Name: "Idle timeout", Value: scaled(get(idleTimeoutRe, defaultIdleTimeoutMs), 1000, "sec"), Notes: "Screen off"},
		{Name: "Display", Value: get(displayRe, defaultFlag), Notes: "OLED enabled"},
		{Name: "RGB Underglow", Value: get(rgbRe, defaultFlag), Notes: "LED strip"},
		{Name: "RGB on start", Value: get(rgbOnStartRe, defaultFlag)},
		{Name: "Pointing device", Value: get(pointingRe, defaultFlag), Notes: "Trackpoint"},
		{Name: "Debounce (press)", Value: get(debouncePressRe, defaultDebounceMs) + " ms"},
		{Name: "Debounce (release)", Value: get(debounceReleaseRe, defaultDebounceMs) + " ms"},
		{Name: "BT TX Power", Value: txPower(content), Notes: "Range"},
	}
}

// scaled renders a millisecond count divided down to the given unit. The raw
// text is kept as-is when it does not fit in an int.
func scaled(raw string, div int, unit string) string {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return raw
	}
	return fmt.Sprintf("%d %s", v/div, unit)
}

func txPower(content string) string {
	if strings.Contains(content, txPowerBoost) {
		return "+8 dBm"
	}
	return "default"
}
