package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gwillem/leaderarm/pkg/poll"
)

type TestCommand struct {
	FPS   int  `long:"fps" default:"30" description:"Frames per second for the display"`
	Chart bool `long:"chart" description:"Render a streaming chart instead of the single-line display"`
}

func (c *TestCommand) Execute(args []string) error {
	leader := loadLeader()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Leader stays passive: the operator moves it by hand
	if err := leader.DisableTorque(ctx); err != nil {
		log.Printf("Warning: failed to disable torque: %v", err)
	}

	poller := poll.New(leader, c.FPS)
	go func() {
		if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Poll error: %v", err)
		}
	}()

	if c.Chart {
		err := runChart(ctx, poller)
		fmt.Println("\nShutting down...")
		releaseLeader(leader)
		return err
	}

	fmt.Printf("Displaying joint angles at %d fps (Ctrl+C to stop)\n", poller.FPS())
	fmt.Println(strings.Repeat("-", 80))

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\n\nShutting down...")
			releaseLeader(leader)
			return nil
		case s := <-poller.Samples():
			if s.Err != nil {
				printLine(fmt.Sprintf("read error: %v", s.Err))
				continue
			}
			printLine(renderLine(s.Action, s.Loop))
		}
	}
}
