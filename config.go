package main

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/lectorapp/lector/speech/prefs"
)

// loadPreferences builds the starting preferences: env defaults and
// LECTOR_* variables first, then values from the config file on top.
func loadPreferences() prefs.Preferences {
	p, err := env.ParseAs[prefs.Preferences]()
	if err != nil {
		log.Warn("could not parse environment preferences", "error", err)
		p = prefs.Default()
	}

	if viper.IsSet("voice") && viper.GetString("voice") != "" {
		p.VoiceID = viper.GetString("voice")
	}
	if viper.IsSet("rate") {
		p.Rate = viper.GetFloat64("rate")
	}
	if viper.IsSet("pitch") {
		p.Pitch = viper.GetFloat64("pitch")
	}
	if viper.IsSet("volume") {
		p.Volume = viper.GetFloat64("volume")
	}
	if viper.IsSet("sentence_break") {
		p.SentenceBreak = viper.GetDuration("sentence_break")
	}
	if viper.IsSet("length_scale") {
		p.LengthScale = viper.GetFloat64("length_scale")
	}
	if viper.IsSet("noise_scale") {
		p.NoiseScale = viper.GetFloat64("noise_scale")
	}
	if viper.IsSet("noise_w") {
		p.NoiseW = viper.GetFloat64("noise_w")
	}
	if viper.IsSet("theme") {
		p.Theme = viper.GetString("theme")
	}
	return p
}

// viperSaver persists preference changes back into the config file.
type viperSaver struct{}

func (viperSaver) Save(p prefs.Preferences) error {
	viper.Set("voice", p.VoiceID)
	viper.Set("rate", p.Rate)
	viper.Set("pitch", p.Pitch)
	viper.Set("volume", p.Volume)
	viper.Set("sentence_break", p.SentenceBreak.Round(time.Millisecond).String())
	viper.Set("length_scale", p.LengthScale)
	viper.Set("noise_scale", p.NoiseScale)
	viper.Set("noise_w", p.NoiseW)
	viper.Set("theme", p.Theme)
	return viper.WriteConfig()
}
