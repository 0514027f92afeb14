package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"lyricsync/internal/lyrics"
	"lyricsync/internal/playback"
	"lyricsync/internal/prefs"
	"lyricsync/internal/vtt"
)

type playEvent struct {
	Time      float64 `json:"time"`
	Mode      string  `json:"mode"`
	WordIndex int     `json:"wordIndex"`
	Word      string  `json:"word,omitempty"`
	State     string  `json:"state,omitempty"`
	LineIndex int     `json:"lineIndex"`
	Line      string  `json:"line,omitempty"`
}

func newPlayCommand(ctx *commandContext) *cobra.Command {
	var inputs inputFlags
	var session sessionFlags
	var from float64
	var speed float64
	var tickFlag time.Duration

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Simulate playback and print highlight changes",
		Long: `Simulate playback and print highlight changes.

A simulated clock advances by --tick or the configured tick interval. With --speed 1
ticks follow wall-clock time; larger values play faster and --speed 0 runs
without waiting.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if speed < 0 {
				return fmt.Errorf("--speed must not be negative")
			}
			if tickFlag < 0 {
				return fmt.Errorf("--tick must not be negative")
			}
			words, text, err := inputs.load(cmd)
			if err != nil {
				return err
			}
			runCtx := cmd.Context()
			s, err := ctx.openSession(runCtx, session, words, text, nil)
			if err != nil {
				return err
			}
			defer s.Close()

			tick := ctx.configValue().TickInterval()
			if tickFlag > 0 {
				tick = tickFlag
			}
			step := tick.Seconds()
			end := songEnd(words) + float64(s.Offset())/1000 + step

			var ticker *time.Ticker
			if speed > 0 {
				ticker = time.NewTicker(time.Duration(float64(tick) / speed))
				defer ticker.Stop()
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			var events []playEvent
			var previous *playEvent
			for i := 0; ; i++ {
				t := from + float64(i)*step
				if t > end {
					break
				}
				event := toPlayEvent(s.Tick(t))
				if previous == nil || event.changedFrom(*previous) {
					if ctx.JSONMode() {
						events = append(events, event)
					} else {
						writePlayEvent(out, event, colorize)
					}
					previous = &event
				}

				if ticker == nil {
					if err := runCtx.Err(); err != nil {
						return err
					}
					continue
				}
				select {
				case <-runCtx.Done():
					return runCtx.Err()
				case <-ticker.C:
				}
			}

			if ctx.JSONMode() {
				if events == nil {
					events = []playEvent{}
				}
				return writeJSON(cmd, events)
			}
			return nil
		},
	}

	inputs.register(cmd, false)
	session.register(cmd)
	cmd.Flags().Float64Var(&from, "from", 0, "Start time in seconds")
	cmd.Flags().Float64Var(&speed, "speed", 1, "Playback speed multiplier (0 runs without waiting)")
	cmd.Flags().DurationVar(&tickFlag, "tick", 0, "Simulated clock step (defaults to sync.tick_interval_ms)")
	return cmd
}

func songEnd(words []lyrics.AlignedWord) float64 {
	end := 0.0
	for _, word := range words {
		if word.EndS > end {
			end = word.EndS
		}
	}
	return end
}

func toPlayEvent(h playback.Highlight) playEvent {
	event := playEvent{
		Time:      h.Time,
		Mode:      string(h.Mode),
		WordIndex: -1,
		LineIndex: h.LineIndex,
	}
	if h.Word.Found() {
		event.WordIndex = h.Word.Index
		event.Word = h.Word.Word.Word
		event.State = h.Word.State.String()
	}
	if h.Line != nil {
		event.Line = h.Line.Text
	}
	return event
}

func (e playEvent) changedFrom(prev playEvent) bool {
	if e.Mode == string(prefs.ModeLine) {
		return e.LineIndex != prev.LineIndex
	}
	return e.WordIndex != prev.WordIndex || e.State != prev.State
}

func writePlayEvent(out io.Writer, e playEvent, colorize bool) {
	stamp := vtt.FormatTimestamp(e.Time)
	if e.Mode == string(prefs.ModeLine) {
		if e.LineIndex < 0 {
			fmt.Fprintf(out, "%s  ...\n", stamp)
			return
		}
		line := e.Line
		if colorize {
			line = ansiGreen + line + ansiReset
		}
		fmt.Fprintf(out, "%s  %s\n", stamp, line)
		return
	}
	if e.WordIndex < 0 {
		fmt.Fprintf(out, "%s  ...\n", stamp)
		return
	}
	word := e.Word
	if colorize && e.State == lyrics.StateCurrent.String() {
		word = ansiGreen + word + ansiReset
	}
	fmt.Fprintf(out, "%s  %-9s %s\n", stamp, e.State, word)
}
