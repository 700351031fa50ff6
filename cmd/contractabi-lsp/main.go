// SPDX-License-Identifier: Apache-2.0
package main

import (
	"os"

	"contractabi/internal/config"
	"contractabi/internal/lsp"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const lsName = "contractabi"

var (
	version    = "0.1.0"
	handler    protocol.Handler
	configPath string
	verbosity  int
	log        = commonlog.GetLogger("contractabi.lsp.server")
)

var rootCmd = &cobra.Command{
	Use:           "contractabi-lsp",
	Short:         "Language server for contract declaration files",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		commonlog.Configure(verbosity, nil)

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		h := lsp.NewHandler(cfg)
		handler = protocol.Handler{
			Initialize:                     h.Initialize,
			Initialized:                    h.Initialized,
			Shutdown:                       h.Shutdown,
			SetTrace:                       h.SetTrace,
			TextDocumentDidOpen:            h.TextDocumentDidOpen,
			TextDocumentDidClose:           h.TextDocumentDidClose,
			TextDocumentDidChange:          h.TextDocumentDidChange,
			TextDocumentHover:              h.TextDocumentHover,
			TextDocumentSemanticTokensFull: h.TextDocumentSemanticTokensFull,
		}

		// debug=false keeps glsp's own message tracing off
		s := server.NewServer(&handler, lsName, false)

		log.Infof("starting %s language server %s", lsName, version)
		return s.RunStdio()
	},
}

func main() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.Flags().IntVar(&verbosity, "verbosity", 1, "log verbosity")

	if err := rootCmd.Execute(); err != nil {
		log.Errorf("%s", err)
		os.Exit(1)
	}
}
