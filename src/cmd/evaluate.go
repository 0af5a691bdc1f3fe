package cmd

import (
	"github.com/spf13/cobra"

	"github.com/warp-contracts/arns-engine/src/evaluator"
	"github.com/warp-contracts/arns-engine/src/utils/logger"
)

func init() {
	RootCmd.AddCommand(evaluateCmd)
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Fold registry interactions into the contract state and save snapshots",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		controller, err := evaluator.NewController(conf)
		if err != nil {
			return
		}

		err = controller.Start()
		if err != nil {
			return
		}

		<-applicationCtx.Done()

		controller.StopWait()

		return
	},
	PostRunE: func(cmd *cobra.Command, args []string) (err error) {
		log := logger.NewSublogger("root-cmd")
		log.Debug("Finished evaluate command")
		return
	},
}
