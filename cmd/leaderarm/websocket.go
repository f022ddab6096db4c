package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gwillem/leaderarm/pkg/poll"
	"github.com/gwillem/leaderarm/pkg/stream"
)

type WebsocketCommand struct {
	FPS  int    `long:"fps" default:"30" description:"Frames per second for action updates"`
	Host string `long:"host" default:"localhost" description:"Websocket server host"`
	Port int    `long:"port" default:"8765" description:"Websocket server port"`
}

func (c *WebsocketCommand) Execute(args []string) error {
	leader := loadLeader()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := leader.DisableTorque(ctx); err != nil {
		log.Printf("Warning: failed to disable torque: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	addr := net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	srv := stream.NewServer(addr, logger)

	go func() {
		if err := srv.ListenAndServe(); err != nil {
			logger.Error("websocket server", "error", err)
			stop()
		}
	}()

	poller := poll.New(leader, c.FPS)
	go func() {
		if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Poll error: %v", err)
		}
	}()

	fmt.Printf("Websocket server started on ws://%s\n", addr)
	fmt.Printf("Streaming actions at %d fps\n", poller.FPS())
	fmt.Println(strings.Repeat("-", 50))

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nShutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("shutdown", "error", err)
			}
			cancel()
			releaseLeader(leader)
			return nil
		case s := <-poller.Samples():
			if s.Err != nil {
				printLine(fmt.Sprintf("read error: %v", s.Err))
				continue
			}
			srv.Broadcast(stream.NewFrame(s.Timestamp, s.Action))
			printLine(fmt.Sprintf("%s clients:%d", renderLine(s.Action, s.Loop), srv.ClientCount()))
		}
	}
}
