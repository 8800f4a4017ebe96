package main

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/config"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/flightsearch"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/form"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/linkopen"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/model"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/submitter"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/validation"
)

const (
	bannerSuccess = "Thank you! Your request has been submitted successfully. We'll get back to you within 24 hours."
	bannerError   = "Sorry, there was an error submitting your request. Please try again or contact us directly."
)

// fieldFlags maps submit flags to form field names.
var fieldFlags = []struct{ flag, field, usage string }{
	{"name", "name", "full name"},
	{"email", "email", "email address"},
	{"phone", "phone", "phone number"},
	{"message", "message", "free-text message"},
	{"service", "service", "requested service (quote form)"},
	{"destination", "destination", "destination (quote form)"},
	{"date-from", "dateFrom", "departure date YYYY-MM-DD (quote form)"},
	{"date-to", "dateTo", "return date YYYY-MM-DD (quote form)"},
	{"travelers", "travelers", "number of travelers (quote form)"},
	{"budget", "budget", "budget range (quote form)"},
}

func newRootCmd(cfg *config.Config, log *zap.Logger, opener linkopen.Opener) *cobra.Command {
	root := &cobra.Command{
		Use:   "inquiryctl",
		Short: "Royal Gate Travels inquiry client",
		Long: `inquiryctl submits travel inquiries and builds flight-search links
from the terminal, using the same validation and delivery as the web forms.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().Bool("print", false, "print links instead of opening them")

	root.AddCommand(
		newSubmitCmd(cfg, log, opener),
		newFlightCmd(cfg, opener),
		newAirportsCmd(cfg),
	)
	return root
}

func newSubmitCmd(cfg *config.Config, log *zap.Logger, opener linkopen.Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Validate and send an inquiry",
		Example: `  inquiryctl submit --name "Ahmed Hassan" --email ahmed@example.com \
    --phone "+44 20 1234 5678" --message "Looking for a Hajj package for two"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema := cfg.Schema()
			if s, _ := cmd.Flags().GetString("schema"); s != "" {
				parsed, err := model.ParseSchema(s)
				if err != nil {
					return err
				}
				schema = parsed
			}

			f := form.New(validation.New(schema), submitter.New(cfg, log, nil, nil), log, nil)
			for _, ff := range fieldFlags {
				if cmd.Flags().Changed(ff.flag) {
					v, _ := cmd.Flags().GetString(ff.flag)
					f.Set(ff.field, v)
				}
			}
			accept, _ := cmd.Flags().GetBool("accept-terms")
			f.Set("acceptTerms", accept)

			res, err := f.Submit(cmd.Context())
			out := cmd.OutOrStdout()
			switch {
			case errors.Is(err, form.ErrInvalid):
				printFieldErrors(cmd, res)
				return err
			case err != nil:
				fmt.Fprintln(cmd.ErrOrStderr(), bannerError)
				return err
			}

			fmt.Fprintln(out, bannerSuccess)
			fmt.Fprintf(out, "Reference: %s\n", res.Receipt.ID)
			if res.Receipt.Handoff == "" {
				return nil
			}
			return handoff(cmd, opener, res.Receipt.Handoff)
		},
	}
	for _, ff := range fieldFlags {
		cmd.Flags().String(ff.flag, "", ff.usage)
	}
	cmd.Flags().Bool("accept-terms", false, "accept the terms and conditions (quote form)")
	cmd.Flags().String("schema", "", "form variant: contact or quote (default from FORM_SCHEMA)")
	return cmd
}

func newFlightCmd(cfg *config.Config, opener linkopen.Opener) *cobra.Command {
	var (
		q      flightsearch.Query
		qrFile string
		qrSize int
	)
	cmd := &cobra.Command{
		Use:     "flight",
		Short:   "Build a prefilled flight-search message",
		Example: `  inquiryctl flight --from LHR --to JED --departure 2026-12-01 --passengers 2`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := flightsearch.LoadDirectory(cfg.AirportsFile)
			if err != nil {
				return err
			}
			link, err := flightsearch.NewBuilder(dir, cfg.MessagingURL).Link(q)
			if err != nil {
				return err
			}

			if qrFile != "" {
				png, err := flightsearch.QRCode(link, qrSize)
				if err != nil {
					return err
				}
				if err := os.WriteFile(qrFile, png, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "QR code written to %s\n", qrFile)
			}
			return handoff(cmd, opener, link)
		},
	}
	cmd.Flags().StringVar(&q.Origin, "from", "", "departure airport code")
	cmd.Flags().StringVar(&q.Destination, "to", "", "destination airport code")
	cmd.Flags().StringVar(&q.Departure, "departure", "", "departure date YYYY-MM-DD")
	cmd.Flags().StringVar(&q.Return, "return", "", "return date YYYY-MM-DD, empty for one way")
	cmd.Flags().IntVar(&q.Passengers, "passengers", 1, "number of passengers")
	cmd.Flags().StringVar(&qrFile, "qr", "", "also write the link as a PNG QR code to this file")
	cmd.Flags().IntVar(&qrSize, "qr-size", 256, "QR code size in pixels")
	return cmd
}

func newAirportsCmd(cfg *config.Config) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "airports [query]",
		Short: "List airports available in the flight search",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := flightsearch.LoadDirectory(cfg.AirportsFile)
			if err != nil {
				return err
			}
			var query string
			if len(args) == 1 {
				query = args[0]
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, a := range dir.Search(query, limit) {
				fmt.Fprintf(tw, "%s\t%s\t%s, %s\n", a.Code, a.City, a.Name, a.Country)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results, 0 for all")
	return cmd
}

// handoff prints or opens a link depending on --print.
func handoff(cmd *cobra.Command, opener linkopen.Opener, link string) error {
	if p, _ := cmd.Flags().GetBool("print"); p {
		fmt.Fprintln(cmd.OutOrStdout(), link)
		return nil
	}
	return opener.Open(cmd.Context(), link)
}

func printFieldErrors(cmd *cobra.Command, res form.Result) {
	fields := make([]string, 0, len(res.Errors))
	for field := range res.Errors {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	for _, field := range fields {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", field, res.Errors[field])
	}
}
