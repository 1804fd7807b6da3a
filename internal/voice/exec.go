package voice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// ErrNoAudio is returned when a recording produced no data
var ErrNoAudio = errors.New("no audio captured")

// baseWordsPerMinute is the normal speaking speed of espeak-style synthesizers
const baseWordsPerMinute = 175

// CommandRecorder captures audio by running an external program that writes
// the recording to stdout until it is interrupted, e.g. arecord or sox.
type CommandRecorder struct {
	Args []string
}

// NewCommandRecorder splits command into program and arguments
func NewCommandRecorder(command string) (*CommandRecorder, error) {
	args := strings.Fields(command)
	if len(args) == 0 {
		return nil, fmt.Errorf("record command is empty")
	}
	return &CommandRecorder{Args: args}, nil
}

// Start launches the recording program. The capture outlives ctx; it ends on Stop.
func (r *CommandRecorder) Start(ctx context.Context) (Capture, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cmd := exec.Command(r.Args[0], r.Args[1:]...)
	capture := &commandCapture{cmd: cmd}
	cmd.Stdout = &capture.audio
	cmd.Stderr = &capture.stderr
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("error running %s: %w", r.Args[0], err)
	}
	return capture, nil
}

type commandCapture struct {
	cmd    *exec.Cmd
	audio  bytes.Buffer
	stderr bytes.Buffer
}

// Stop interrupts the recorder and waits for it to flush. Recorders exit
// with a non-zero status when interrupted, so only missing audio is an error.
func (c *commandCapture) Stop() ([]byte, error) {
	if err := c.cmd.Process.Signal(os.Interrupt); err != nil {
		_ = c.cmd.Process.Kill()
	}
	waitErr := c.cmd.Wait()
	if c.audio.Len() == 0 {
		if waitErr != nil {
			return nil, fmt.Errorf("%w: %v: %s", ErrNoAudio, waitErr, strings.TrimSpace(c.stderr.String()))
		}
		return nil, ErrNoAudio
	}
	return c.audio.Bytes(), nil
}

// CommandSpeaker speaks text by running an external synthesizer with the
// text as its last argument. A "{wpm}" argument is replaced by the speaking
// speed derived from Rate.
type CommandSpeaker struct {
	Args []string
	Rate float64
}

// NewCommandSpeaker splits command into program and arguments
func NewCommandSpeaker(command string, rate float64) (*CommandSpeaker, error) {
	args := strings.Fields(command)
	if len(args) == 0 {
		return nil, fmt.Errorf("speak command is empty")
	}
	return &CommandSpeaker{Args: args, Rate: rate}, nil
}

// Speak blocks until the synthesizer exits
func (s *CommandSpeaker) Speak(ctx context.Context, text string) error {
	args := s.args(text)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("error running %s: %w: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

func (s *CommandSpeaker) args(text string) []string {
	rate := s.Rate
	if rate <= 0 {
		rate = 1
	}
	wpm := strconv.Itoa(int(baseWordsPerMinute * rate))

	args := make([]string, 0, len(s.Args)+1)
	for _, a := range s.Args {
		args = append(args, strings.ReplaceAll(a, "{wpm}", wpm))
	}
	return append(args, text)
}
