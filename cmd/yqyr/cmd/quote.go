package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	surchargehttp "github.com/flight-search/yqyr-surcharge-engine/internal/adapter/http"
	"github.com/flight-search/yqyr-surcharge-engine/internal/adapter/currency"
	"github.com/flight-search/yqyr-surcharge-engine/internal/adapter/repository/memory"
	"github.com/flight-search/yqyr-surcharge-engine/internal/infrastructure/geo"
	"github.com/flight-search/yqyr-surcharge-engine/internal/infrastructure/memguard"
	"github.com/flight-search/yqyr-surcharge-engine/internal/infrastructure/timeutil"
	"github.com/flight-search/yqyr-surcharge-engine/internal/usecase"
	"github.com/flight-search/yqyr-surcharge-engine/internal/yqyr"
)

const (
	formatJSON = "json"
	formatText = "text"
)

type quoteFlags struct {
	request string
	format  string
}

func newQuoteCmd(opts *options) *cobra.Command {
	flags := &quoteFlags{}

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote the YQ/YR of an itinerary and its fare paths",
		Long: `Builds the surcharge calculators of one pricing transaction and prints, per
passenger type, the lower bound, the charge of every fare path and the shopping
matches of every passenger type fare.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := runQuote(cmd, opts, flags.request)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), flags.format, resp, writeQuoteText)
		},
	}

	addRequestFlags(cmd, flags)
	return cmd
}

func newLowerBoundCmd(opts *options) *cobra.Command {
	flags := &quoteFlags{}

	cmd := &cobra.Command{
		Use:   "lower-bound",
		Short: "Print the lowest YQ/YR each passenger type can carry",
		Long: `Runs the precalculation only and prints the lower bound of every passenger
type and validating carrier. Fare paths in the request are ignored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := runQuote(cmd, opts, flags.request, func(req *usecase.QuoteRequest) {
				req.FarePaths = nil
				req.PaxTypeFares = nil
			})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), flags.format, resp, writeLowerBoundText)
		},
	}

	addRequestFlags(cmd, flags)
	return cmd
}

func addRequestFlags(cmd *cobra.Command, flags *quoteFlags) {
	cmd.Flags().StringVarP(&flags.request, "request", "r", "", `quote request JSON file ("-" reads stdin)`)
	cmd.Flags().StringVarP(&flags.format, "format", "f", formatJSON, "output format (json, text)")
	_ = cmd.MarkFlagRequired("request")
}

// runQuote loads the bundle and the request and runs one quote.
func runQuote(cmd *cobra.Command, opts *options, requestPath string, adjust ...func(*usecase.QuoteRequest)) (*usecase.QuoteResponse, error) {
	body, err := readRequest(cmd.InOrStdin(), requestPath)
	if err != nil {
		return nil, err
	}

	var dto surchargehttp.QuoteSurchargesRequest
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("parse request %s: %w", requestPath, err)
	}
	if err := dto.Validate(); err != nil {
		return nil, describeValidation(err)
	}
	req, err := surchargehttp.ToQuoteRequest(&dto)
	if err != nil {
		return nil, err
	}
	for _, fn := range adjust {
		fn(&req)
	}

	deps, err := loadDependencies(opts)
	if err != nil {
		return nil, err
	}

	calcCfg := yqyr.DefaultConfig()
	calcCfg.MaxApplications = opts.maxApplications

	uc := usecase.NewQuoteUseCase(deps, calcCfg, nil)
	return uc.Quote(context.Background(), req)
}

func readRequest(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read request from stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}
	return data, nil
}

func loadDependencies(opts *options) (yqyr.Dependencies, error) {
	repo, err := memory.Load(opts.dataFile)
	if err != nil {
		return yqyr.Dependencies{}, err
	}

	rates := repo.Rates()
	if len(rates) == 0 {
		rates = currency.DefaultRates()
	}
	table, err := currency.NewTable(rates)
	if err != nil {
		return yqyr.Dependencies{}, fmt.Errorf("currency rates: %w", err)
	}

	opts.log.Debug().
		Str("file", opts.dataFile).
		Strs("carriers", repo.Carriers()).
		Msg("loaded filing bundle")

	return yqyr.Dependencies{
		DataSource: repo,
		Currency:   table,
		Mileage:    geo.NewGreatCircle(),
		Governor:   memguard.NewHeapGovernor(opts.heapLimitMB),
		Clock:      timeutil.NewRealClock(),
		Logger:     opts.log,
	}, nil
}

// describeValidation flattens field errors into one sorted message.
func describeValidation(err error) error {
	var verrs *surchargehttp.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	details := verrs.ToMap()
	fields := make([]string, 0, len(details))
	for field := range details {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	lines := make([]string, len(fields))
	for i, field := range fields {
		lines[i] = fmt.Sprintf("  %s: %s", field, details[field])
	}
	return fmt.Errorf("invalid request:\n%s", strings.Join(lines, "\n"))
}

func render(w io.Writer, format string, resp *usecase.QuoteResponse, text func(io.Writer, *usecase.QuoteResponse) error) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case formatText:
		return text(w, resp)
	default:
		return fmt.Errorf("unknown format %q (want json or text)", format)
	}
}

func writeLowerBoundText(w io.Writer, resp *usecase.QuoteResponse) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "PAX\tVALIDATING\tLOWER BOUND\tCONCURRING\n")
	for _, pt := range resp.PaxTypes {
		status := ""
		if pt.PrecalcFailed {
			status = " (precalc failed)"
		}
		fmt.Fprintf(tw, "%s\t*\t%s %s%s\t\n", pt.PaxType, pt.LowerBound.String(), resp.Currency, status)
		for _, vc := range pt.ValidatingCarriers {
			fmt.Fprintf(tw, "%s\t%s\t%s %s\t%s\n", pt.PaxType, vc.Carrier, vc.LowerBound.String(), resp.Currency, strings.Join(vc.Concurring, ","))
		}
	}
	return tw.Flush()
}

func writeQuoteText(w io.Writer, resp *usecase.QuoteResponse) error {
	fmt.Fprintf(w, "Transaction %s (%d calculators, %dms)\n\n", resp.TransactionID, resp.Metadata.Calculators, resp.Metadata.DurationMs)
	if err := writeLowerBoundText(w, resp); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, pt := range resp.PaxTypes {
		for _, fp := range pt.FarePaths {
			fmt.Fprintf(tw, "\n%s fare path %s\tcharge %s %s\n", pt.PaxType, fp.ID, fp.Charge.String(), resp.Currency)
			writeFees(tw, fp.Fees)
		}
		for _, sq := range pt.Shopping {
			fmt.Fprintf(tw, "\n%s shopping %s (%d-%d)\ttotal %s %s\n", pt.PaxType, sq.FareBasis, sq.FirstSeg, sq.LastSeg, sq.Total.String(), resp.Currency)
			writeFees(tw, sq.Fees)
		}
	}
	return tw.Flush()
}

func writeFees(w io.Writer, fees []usecase.AppliedFee) {
	for _, f := range fees {
		conditional := ""
		if f.Conditional {
			conditional = "conditional"
		}
		fmt.Fprintf(w, "  %s %s%s seq %d\tsegs %d-%d\t%s\t%s %s\t%s\n",
			f.Carrier, f.TaxCode, f.SubCode, f.SeqNo, f.FirstSeg, f.LastSeg, f.Direction, f.Amount.String(), f.Currency, conditional)
	}
}
