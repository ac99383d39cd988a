package chat

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/doctorq/doctorq-sdk/internal/cmd/base"
	"github.com/doctorq/doctorq-sdk/pkg/apiclient"
	"github.com/doctorq/doctorq-sdk/pkg/models"
)

type Command struct {
	*base.Command

	client base.ClientFlags

	flagAgent   string
	flagSession string
}

func (c *Command) Synopsis() string {
	return "Chat with an AI agent"
}

func (c *Command) Help() string {
	return `Usage: doctorq chat [options] MESSAGE

  Sends MESSAGE to an AI agent and streams the reply to stdout. Without
  -agent the default assistant answers. Interrupt to stop the reply.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("chat", flag.ContinueOnError))

	c.client.Register(f)
	f.StringVar(&c.flagAgent, "agent", "", "ID of the agent to talk to.")
	f.StringVar(&c.flagSession, "session", "", "Conversation session ID to continue.")

	return f
}

func (c *Command) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	message := strings.TrimSpace(strings.Join(flags.Args(), " "))
	if message == "" {
		ui.Error("a message is required")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client, err := c.NewClient(ctx, c.client)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	var streamErr error
	client.Chat(ctx, c.flagAgent, models.ChatRequest{
		Message:   message,
		SessionID: c.flagSession,
	}, apiclient.StreamHandlers{
		OnMessage: func(chunk string) {
			fmt.Fprint(c.Stdout, chunk)
		},
		OnError: func(err error) {
			streamErr = err
		},
		OnComplete: func() {
			fmt.Fprintln(c.Stdout)
		},
	})

	if streamErr != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(c.Stdout)
			ui.Warn("reply interrupted")
			return 130
		}
		ui.Error(fmt.Sprintf("error streaming reply: %v", streamErr))
		return 1
	}
	return 0
}
