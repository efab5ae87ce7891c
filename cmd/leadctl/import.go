package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"lead_qualification_backend/internal/leads/management"
	"lead_qualification_backend/internal/leads/repository"
	"lead_qualification_backend/internal/leads/transport"
	"lead_qualification_backend/platform/validator"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import leads from a YAML file",
	Long:  "Validates, scores and stores every lead in the file. With --dry-run the leads are scored in memory and nothing is written.",
	RunE:  runImport,
}

var (
	importInputFile string
	importDryRun    bool
)

func init() {
	importCmd.Flags().StringVarP(&importInputFile, "in", "i", "", "Path to the leads YAML file (required)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Score the leads without writing to the database")

	if err := importCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(importCmd)
}

type importDocument struct {
	Leads []importLead `yaml:"leads"`
}

type importLead struct {
	Name              string `yaml:"name"`
	Email             string `yaml:"email"`
	Phone             string `yaml:"phone"`
	Source            string `yaml:"source"`
	DemoRequested     bool   `yaml:"demoRequested"`
	PricingCompared   bool   `yaml:"pricingCompared"`
	MultipleEnquiries bool   `yaml:"multipleEnquiries"`
}

// parseImportFile decodes the import document. Unknown keys are rejected so a
// misspelled flag does not silently score as false.
func parseImportFile(r io.Reader) ([]transport.CreateLeadRequest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc importDocument
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("import file is empty")
		}
		return nil, fmt.Errorf("failed to parse import file: %w", err)
	}
	if len(doc.Leads) == 0 {
		return nil, errors.New("import file has no leads")
	}

	reqs := make([]transport.CreateLeadRequest, len(doc.Leads))
	for i, l := range doc.Leads {
		reqs[i] = transport.CreateLeadRequest{
			Name:              l.Name,
			Email:             l.Email,
			Phone:             l.Phone,
			Source:            l.Source,
			DemoRequested:     l.DemoRequested,
			PricingCompared:   l.PricingCompared,
			MultipleEnquiries: l.MultipleEnquiries,
		}
	}
	return reqs, nil
}

// validateImport checks every lead before anything is stored.
func validateImport(val *validator.Validator, reqs []transport.CreateLeadRequest) error {
	var problems []string
	for i, req := range reqs {
		if err := val.Struct(req); err != nil {
			for field, tag := range validator.FieldErrors(err) {
				problems = append(problems, fmt.Sprintf("lead %d: %s failed %s", i+1, field, tag))
			}
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid import file:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}

func importLeads(ctx context.Context, svc *management.Service, reqs []transport.CreateLeadRequest) ([]transport.LeadDetailResponse, error) {
	out := make([]transport.LeadDetailResponse, 0, len(reqs))
	for i, req := range reqs {
		lead, err := svc.Create(ctx, req, nil)
		if err != nil {
			return out, fmt.Errorf("lead %d (%s): %w", i+1, req.Email, err)
		}
		out = append(out, lead)
	}
	return out, nil
}

func writeImportSummary(w io.Writer, leads []transport.LeadDetailResponse) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tSOURCE\tSCORE\tTIER\tNEXT ACTION")
	for _, lead := range leads {
		next := ""
		if len(lead.Scoring.Actions) > 0 {
			next = lead.Scoring.Actions[0]
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", lead.Name, lead.SourceLabel, lead.Scoring.Score, lead.Scoring.Tier, next)
	}
	return tw.Flush()
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	f, err := os.Open(importInputFile)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer func() { _ = f.Close() }()

	reqs, err := parseImportFile(f)
	if err != nil {
		return err
	}

	val := validator.New()
	if err := transport.RegisterValidations(val); err != nil {
		return err
	}
	if err := validateImport(val, reqs); err != nil {
		return err
	}

	var svc *management.Service
	if importDryRun {
		svc = management.New(repository.NewMemory(), nil, nil)
	} else {
		b, err := openBackend(ctx)
		if err != nil {
			return err
		}
		defer b.stop()
		svc = management.New(b.repo, b.bus, b.log)
	}

	leads, err := importLeads(ctx, svc, reqs)
	if err != nil {
		return err
	}

	if err := writeImportSummary(cmd.OutOrStdout(), leads); err != nil {
		return err
	}
	verb := "Imported"
	if importDryRun {
		verb = "Scored (dry run)"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %d leads\n", verb, len(leads))
	return nil
}
