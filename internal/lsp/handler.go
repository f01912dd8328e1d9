// Package lsp implements a language server for Brainfuck source, built on
// tliron/glsp the way the teacher's LSP server is.
package lsp

import (
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"bfc/internal/diag"
	"bfc/internal/parser"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// SemanticTokenTypes is the set of semantic token types this server emits,
// advertised to the client during Initialize.
var SemanticTokenTypes = []string{
	"operator",
	"keyword",
	"function",
}

// SemanticTokenModifiers is empty: Brainfuck tokens carry no modifiers.
var SemanticTokenModifiers = []string{}

// Handler implements the LSP server handlers for Brainfuck.
type Handler struct {
	mu          sync.RWMutex
	content     map[string]string
	diagnostics map[string]*diag.Diagnostic
}

// NewHandler creates an empty Handler.
func NewHandler() *Handler {
	return &Handler{
		content:     make(map[string]string),
		diagnostics: make(map[string]*diag.Diagnostic),
	}
}

func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("bfc-lsp Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("bfc-lsp initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Println("bfc-lsp shutdown")
	return nil
}

func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	if d, err := h.updateDocument(uri, params.TextDocument.Text); err == nil && d != nil {
		sendDiagnosticNotification(ctx, uri, []protocol.Diagnostic{ConvertDiagnostic(d)})
	}
	return nil
}

func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}

	// Full sync: the last change event carries the whole new text.
	change := params.ContentChanges[len(params.ContentChanges)-1]
	event, ok := change.(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		return fmt.Errorf("unsupported content change event for %s", params.TextDocument.URI)
	}

	uri := params.TextDocument.URI
	if d, err := h.updateDocument(uri, event.Text); err == nil && d != nil {
		sendDiagnosticNotification(ctx, uri, []protocol.Diagnostic{ConvertDiagnostic(d)})
	}
	return nil
}

func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.Lock()
	delete(h.content, path)
	delete(h.diagnostics, path)
	h.mu.Unlock()

	return nil
}

func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.RLock()
	source, ok := h.content[path]
	h.mu.RUnlock()
	if !ok {
		return &protocol.SemanticTokens{}, nil
	}

	tokens, err := collectSemanticTokens(source)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize %s: %w", path, err)
	}

	var data []uint32
	var prevLine, prevStart uint32
	for _, tok := range tokens {
		deltaLine := tok.Line - prevLine
		deltaStart := tok.StartChar
		if deltaLine == 0 {
			deltaStart = tok.StartChar - prevStart
		}

		data = append(data, deltaLine, deltaStart, tok.Length, uint32(tok.TokenType), uint32(tok.TokenModifiers))

		prevLine = tok.Line
		prevStart = tok.StartChar
	}

	return &protocol.SemanticTokens{Data: data}, nil
}

// updateDocument reparses source and stores the result, returning the
// resulting diagnostic (nil if source now parses cleanly). It is pure
// with respect to the LSP connection: callers decide whether and how to
// publish the result, the same split the teacher's updateAST/
// sendDiagnosticNotification pair makes.
func (h *Handler) updateDocument(uri protocol.DocumentUri, source string) (*diag.Diagnostic, error) {
	path, err := uriToPath(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", uri, err)
	}

	_, d := parser.Parse(path, source)

	h.mu.Lock()
	h.content[path] = source
	h.diagnostics[path] = d
	h.mu.Unlock()

	return d, nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
