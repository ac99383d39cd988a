package base

import (
	"context"
	"fmt"

	"github.com/doctorq/doctorq-sdk/internal/config"
	"github.com/doctorq/doctorq-sdk/pkg/doctorq"
)

// ClientFlags are the flags shared by commands that talk to DoctorQ.
type ClientFlags struct {
	Config string
	Format string
}

// Register adds the shared flags to f.
func (cf *ClientFlags) Register(f *FlagSet) {
	f.StringVar(
		&cf.Config, "config", "",
		"Path to a DoctorQ HCL config file. Environment variables override it.",
	)
	f.StringVar(
		&cf.Format, "format", "json",
		"Output format (json, yaml).",
	)
}

// PageFlags select a page of a listing.
type PageFlags struct {
	Page int
	Size int
}

// Register adds the pagination flags to f.
func (pf *PageFlags) Register(f *FlagSet) {
	f.IntVar(&pf.Page, "page", 0, "Page number. Zero uses the server default.")
	f.IntVar(&pf.Size, "size", 0, "Page size. Zero uses the server default.")
}

// Pagination converts the flags for the doctorq filters.
func (pf PageFlags) Pagination() doctorq.Pagination {
	return doctorq.Pagination{Page: pf.Page, Size: pf.Size}
}

// NewClient loads the configuration and builds a DoctorQ client.
func (c *Command) NewClient(ctx context.Context, cf ClientFlags) (*doctorq.Client, error) {
	cfg, err := config.NewConfig(cf.Config)
	if err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	// The config file decides verbosity and format from here on.
	c.Log = cfg.NewLogger(c.Log.Name())

	opts, err := cfg.ClientOptions(ctx, c.Log, nil)
	if err != nil {
		return nil, fmt.Errorf("error building client options: %w", err)
	}

	client, err := doctorq.New(opts)
	if err != nil {
		return nil, fmt.Errorf("error creating client: %w", err)
	}
	return client, nil
}
