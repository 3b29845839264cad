package command

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"friender/pkg/geo"
	"friender/pkg/logger"
	"friender/services/seeder/generator"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var (
	genCount      int
	genOut        string
	genSeed       int64
	genPassword   string
	genPostalFile string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a CSV of random users",
	RunE: func(cmd *cobra.Command, args []string) error {
		if genCount <= 0 {
			return fmt.Errorf("--count must be positive")
		}
		if genSeed == 0 {
			genSeed = time.Now().UnixNano()
		}

		table, err := geo.Load(genPostalFile)
		if err != nil {
			return err
		}
		// 가입 가능한 다섯 자리 우편번호만 사용
		codes := lo.Filter(table.Codes(), func(c int, _ int) bool {
			return c >= 10000 && c <= 99999
		})

		rows, err := generator.Generate(rand.New(rand.NewSource(genSeed)), genCount, codes, genPassword)
		if err != nil {
			return err
		}

		f, err := os.Create(genOut)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := generator.WriteCSV(f, rows); err != nil {
			return err
		}

		logger.Logger.Info().Int("count", len(rows)).Str("file", genOut).Msg("✅ Users generated")
		return nil
	},
}

func init() {
	generateCmd.Flags().IntVar(&genCount, "count", 20, "number of users")
	generateCmd.Flags().StringVar(&genOut, "out", "users.csv", "output CSV path")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "random seed (0 = time based)")
	generateCmd.Flags().StringVar(&genPassword, "password", "password", "plaintext password for every user")
	generateCmd.Flags().StringVar(&genPostalFile, "postal-file", os.Getenv("GEO_POSTAL_FILE"), "GeoNames postal dump to draw codes from (default: embedded sample)")
	rootCmd.AddCommand(generateCmd)
}
