// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"log"
	"os"

	"bfc/internal/lsp"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const lsName = "bfc"

var version = "0.1.0"

func main() {
	address := flag.String("ws", "", "serve over WebSocket at this address instead of stdio, e.g. :7777")
	flag.Parse()

	commonlog.Configure(1, nil)

	bfHandler := lsp.NewHandler()

	handler := protocol.Handler{
		Initialize:                     bfHandler.Initialize,
		Initialized:                    bfHandler.Initialized,
		Shutdown:                       bfHandler.Shutdown,
		TextDocumentDidOpen:            bfHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           bfHandler.TextDocumentDidClose,
		TextDocumentDidChange:          bfHandler.TextDocumentDidChange,
		TextDocumentSemanticTokensFull: bfHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	if *address != "" {
		log.Printf("Starting %s LSP server %s over WebSocket at %s...", lsName, version, *address)
		if err := s.RunWebSocket(*address); err != nil {
			log.Println("Error starting bfc LSP server:", err)
			os.Exit(1)
		}
		return
	}

	log.Printf("Starting %s LSP server %s over stdio...", lsName, version)
	if err := s.RunStdio(); err != nil {
		log.Println("Error starting bfc LSP server:", err)
		os.Exit(1)
	}
}
