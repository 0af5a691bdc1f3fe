package cmd

import (
	"github.com/spf13/cobra"

	"github.com/warp-contracts/arns-engine/src/gateway"
	"github.com/warp-contracts/arns-engine/src/utils/logger"
)

func init() {
	RootCmd.AddCommand(gatewayCmd)
}

var gatewayCmd = &cobra.Command{
	Use:   "gateway",
	Short: "Serve contract reads over the latest evaluated snapshot",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		controller, err := gateway.NewController(conf)
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
		log.Debug("Finished gateway command")
		return
	},
}
