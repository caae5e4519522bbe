package main

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"github.com/koron-go/agingbloom"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "bloomcheck",
		Short:        "inspect sizing and false positive rates of aging bloom filters",
		SilenceUsage: true,
	}
	bindFlags(root.PersistentFlags())

	root.AddCommand(&cobra.Command{
		Use:   "derive",
		Short: "print the array length and hash count for the sizing flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			p, err := agingbloom.Derive(cfg.ExpectedInserts, cfg.FalsePositiveRate)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "n=%d p=%v m=%d k=%d\n", p.ExpectedInserts, p.FalsePositiveRate, p.Len, p.HashCount)
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "fpr",
		Short: "insert N items, probe 9N others and report false positives",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			log, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			r, err := runFPR(cfg, log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "variant=%s false_positives=%d probes=%d rate=%.5f limit=%.1f ok=%t\n",
				cfg.Variant, r.FalsePositives, r.Probes, r.Rate(), r.Limit, r.OK())
			return nil
		},
	})
	return root
}

func newHasher(name string) (agingbloom.Hasher, error) {
	switch name {
	case "murmur3", "":
		return agingbloom.Murmur3Hasher, nil
	case "metro":
		return agingbloom.MetroHasher, nil
	case "xxh3":
		return agingbloom.XXH3Hasher, nil
	}
	return nil, errs.New("unknown hasher: %q", name)
}

func newFilter(cfg Config, log *zap.Logger) (agingbloom.Filter, error) {
	h, err := newHasher(cfg.Hasher)
	if err != nil {
		return nil, err
	}
	opts := []agingbloom.Option{
		agingbloom.WithHasher(h),
		agingbloom.WithLogger(log),
	}
	n, p := cfg.ExpectedInserts, cfg.FalsePositiveRate
	switch cfg.Variant {
	case "plain":
		return agingbloom.New(n, p, opts...)
	case "counting":
		return agingbloom.NewCBF(n, p, opts...)
	case "decay":
		opts = append(opts, agingbloom.WithRand(rand.New(rand.NewSource(cfg.Seed))))
		return agingbloom.NewDBF(n, p, cfg.BitResetRate, opts...)
	case "generational":
		return agingbloom.NewGBF(n, p, cfg.Generations, opts...)
	case "a2buffering":
		return agingbloom.NewGBF(n, p, cfg.Generations, append(opts, agingbloom.WithRefresh(true))...)
	}
	return nil, errs.New("unknown variant: %q", cfg.Variant)
}

// FPRResult is the outcome of one false positive measurement.
type FPRResult struct {
	FalseNegatives int
	FalsePositives int
	Probes         int
	Limit          float64
}

// Rate returns the measured false positive rate.
func (r FPRResult) Rate() float64 {
	return float64(r.FalsePositives) / float64(r.Probes)
}

// OK reports whether no inserted item was missed and false positives stay
// below the limit.
func (r FPRResult) OK() bool {
	return r.FalseNegatives == 0 && float64(r.FalsePositives) < r.Limit
}

func runFPR(cfg Config, log *zap.Logger) (FPRResult, error) {
	f, err := newFilter(cfg, log)
	if err != nil {
		return FPRResult{}, err
	}
	n := int(cfg.ExpectedInserts)
	for i := 0; i < n; i++ {
		f.Put([]byte(strconv.Itoa(i)))
	}
	var r FPRResult
	for i := 0; i < n; i++ {
		if !f.Check([]byte(strconv.Itoa(i))) {
			r.FalseNegatives++
		}
	}
	for i := n; i < 10*n; i++ {
		if f.Check([]byte(strconv.Itoa(i))) {
			r.FalsePositives++
		}
	}
	r.Probes = 9 * n
	r.Limit = 1.1 * f.FalsePositiveRate() * float64(r.Probes)
	log.Info("measured false positive rate",
		zap.String("variant", cfg.Variant),
		zap.Uint64("m", f.Len()),
		zap.Uint64("k", f.HashCount()),
		zap.Int("false_negatives", r.FalseNegatives),
		zap.Int("false_positives", r.FalsePositives),
		zap.Int("probes", r.Probes))
	return r, nil
}
