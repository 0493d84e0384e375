package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TimurManjosov/churnguard/internal/cli"
	"github.com/TimurManjosov/churnguard/internal/features"
)

var predictInput = features.DefaultInput()

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Score one customer",
	Long: `Score one customer and print the churn probability and risk tier.

Unset flags keep the form defaults (a 12-month month-to-month customer paying
$65 a month by electronic check).

Examples:
  churnctl predict --gender Female --partner Yes --dependents No --tenure 2 \
    --monthly-charges 95 --total-charges 200 --contract Month-to-month
  churnctl predict --tenure 40 --contract "Two year" --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		p, err := c.Predict(cmd.Context(), predictInput)
		if err != nil {
			return fmt.Errorf("failed to predict: %w", err)
		}

		if !quiet {
			return cli.PrintPrediction(cmd.OutOrStdout(), p, outputFormat())
		}

		return nil
	},
}

func init() {
	f := predictCmd.Flags()
	f.StringVar(&predictInput.Gender, "gender", predictInput.Gender, "Male or Female")
	f.StringVar(&predictInput.SeniorCitizen, "senior", predictInput.SeniorCitizen, "Senior citizen (Yes or No)")
	f.StringVar(&predictInput.Partner, "partner", predictInput.Partner, "Has a partner (Yes or No)")
	f.StringVar(&predictInput.Dependents, "dependents", predictInput.Dependents, "Has dependents (Yes or No)")
	f.IntVar(&predictInput.Tenure, "tenure", predictInput.Tenure, "Tenure in months (0-72)")
	f.StringVar(&predictInput.PhoneService, "phone-service", predictInput.PhoneService, "Phone service (Yes or No)")
	f.StringVar(&predictInput.Contract, "contract", predictInput.Contract, "Month-to-month, One year or Two year")
	f.StringVar(&predictInput.PaperlessBilling, "paperless-billing", predictInput.PaperlessBilling, "Paperless billing (Yes or No)")
	f.StringVar(&predictInput.PaymentMethod, "payment-method", predictInput.PaymentMethod, "Payment method")
	f.Float64Var(&predictInput.MonthlyCharges, "monthly-charges", predictInput.MonthlyCharges, "Monthly charges in dollars (18-120)")
	f.Float64Var(&predictInput.TotalCharges, "total-charges", predictInput.TotalCharges, "Total charges in dollars (0-9000)")

	rootCmd.AddCommand(predictCmd)
}
