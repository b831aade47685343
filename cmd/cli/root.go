package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "roll2roll",
	Short: "roll2roll jackpot program CLI",
}

func init() {
	RegisterConfig(rootCmd)
	RegisterRound(rootCmd)
	RegisterDeposit(rootCmd)
	RegisterVrf(rootCmd)
	RegisterClaim(rootCmd)
	RegisterDegen(rootCmd)
}

// Execute runs the assembled command tree and writes one structured audit
// line recording which command ran and whether it succeeded.
func Execute() error {
	target, args, findErr := rootCmd.Find(os.Args[1:])
	if findErr != nil {
		target = rootCmd
	}
	err := rootCmd.Execute()
	auditCommand(target.CommandPath(), args, err)
	return err
}
