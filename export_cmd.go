package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lectorapp/lector/export"
)

var exportCmd = &cobra.Command{
	Use:     "export WAV MP3",
	Short:   "Encode a rendered speech artifact to mp3",
	Long:    "\nEncode a wav artifact to mp3 through ffmpeg. When ffmpeg is not installed the wav is copied next to the requested destination instead.",
	Example: "lector export lectura.wav lectura.mp3",
	Args:    cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		out, err := export.NewEncoder().Encode(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Println("Wrote", out)
		return nil
	},
}
