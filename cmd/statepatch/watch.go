package main

import (
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/scott-cotton/cli"

	"github.com/statepatch/statepatch/encode"
	"github.com/statepatch/statepatch/track"
)

// watch polls a shell command and tracks its decoded output, emitting
// the patch operations between successive runs.
func watch(cfg *WatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Watch.Parse(cc, args)
	if err != nil {
		cfg.Watch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: watch requires a command, got %v", cli.ErrUsage, args)
	}
	filter, err := compileFilter(cfg.Match)
	if err != nil {
		return err
	}

	var tracker *track.Tracker
	ticker := time.NewTicker(cfg.Every)
	defer ticker.Stop()
	emitted := 0
	for i := 0; i != cfg.Lim; i++ {
		next, err := runOnce(cfg, args[0])
		if err != nil {
			return err
		}
		if tracker == nil {
			tracker = track.New(next)
			<-ticker.C
			continue
		}
		tracker.Rebind(next)
		ops := tracker.Patches()
		ops, err = filter.apply(ops)
		if err != nil {
			return err
		}
		if len(ops) != 0 {
			if emitted > 0 {
				if _, err := cc.Out.Write([]byte("---\n")); err != nil {
					return err
				}
			}
			when := time.Now().Format(time.RFC3339Nano)
			fmt.Fprintf(cc.Out, "# difference found at %s\n", when)
			if err := encode.Encode(ops, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
				return err
			}
			emitted++
		}
		<-ticker.C
	}
	return nil
}

func runOnce(cfg *WatchConfig, command string) (any, error) {
	cmd := exec.Command("sh", "-c", command)
	r, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("unable to create pipe for command %q: %w", command, err)
	}
	cmd.WaitDelay = cfg.Every
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("unable to start %q: %w", command, err)
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("command %q exited with an error: %w", command, err)
	}
	return decodeState(cfg.MainConfig, d)
}
