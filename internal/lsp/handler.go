package lsp

import (
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"contractabi/internal/abi"
	"contractabi/internal/ast"
	"contractabi/internal/config"
	"contractabi/internal/errors"
	"contractabi/internal/parser"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var log = commonlog.GetLogger("contractabi.lsp")

// document is the last analysis of one open file.
type document struct {
	program     *ast.Program
	model       *abi.ContractModel
	diagnostics []protocol.Diagnostic
}

// Handler implements the LSP server handlers for contract declaration files
type Handler struct {
	mu        sync.RWMutex
	cfg       *config.Config
	trace     protocol.TraceValue
	documents map[protocol.DocumentUri]*document

	// analyses is keyed by path and content digest; nil when disabled.
	analyses *lru.Cache[string, *document]
}

// NewHandler creates a Handler; a nil cfg uses the default configuration.
func NewHandler(cfg *config.Config) *Handler {
	if cfg == nil {
		cfg = config.Default()
	}
	h := &Handler{
		cfg:       cfg,
		trace:     protocol.TraceValueOff,
		documents: make(map[protocol.DocumentUri]*document),
	}
	if cfg.LSP.CacheSize > 0 {
		cache, err := lru.New[string, *document](cfg.LSP.CacheSize)
		if err != nil {
			log.Warningf("analysis cache disabled: %s", err)
		} else {
			h.analyses = cache
		}
	}
	return h
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Infof("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			HoverProvider: true,
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
	log.Infof("initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Infof("shutdown")
	return nil
}

func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	log.Debugf("trace set to %s", params.Value)
	h.mu.Lock()
	h.trace = params.Value
	h.mu.Unlock()
	return nil
}

// TextDocumentDidOpen analyzes the opened text and publishes its diagnostics
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Debugf("opened %s", params.TextDocument.URI)
	return h.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
}

// TextDocumentDidChange re-analyzes the document. Only full-text sync is
// advertised, so the last whole-document change wins.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Debugf("changed %s", params.TextDocument.URI)

	text, ok := "", false
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text, ok = c.Text, true
		case *protocol.TextDocumentContentChangeEventWhole:
			text, ok = c.Text, true
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text, ok = c.Text, true
			}
		case *protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text, ok = c.Text, true
			}
		}
	}
	if !ok {
		return fmt.Errorf("no full-text change for %s", params.TextDocument.URI)
	}

	return h.update(ctx, params.TextDocument.URI, text)
}

// TextDocumentDidClose forgets the document and clears its diagnostics
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Debugf("closed %s", params.TextDocument.URI)

	h.mu.Lock()
	delete(h.documents, params.TextDocument.URI)
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, params.TextDocument.URI, []protocol.Diagnostic{})
	return nil
}

// TextDocumentHover shows the resolved type information of the declaration under the cursor
func (h *Handler) TextDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := h.document(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}

	// LSP positions are 0-based, ours 1-based.
	result, ok := hoverAt(doc.program, doc.model, int(params.Position.Line)+1, int(params.Position.Character)+1)
	if !ok {
		return nil, nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: result.Value,
		},
		Range: &protocol.Range{
			Start: toProtocolPosition(result.Start),
			End:   toProtocolPosition(result.End),
		},
	}, nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc := h.document(params.TextDocument.URI)
	if doc == nil {
		return nil, fmt.Errorf("document %s is not open", params.TextDocument.URI)
	}

	return &protocol.SemanticTokens{
		Data: encodeSemanticTokens(collectSemanticTokens(doc.program)),
	}, nil
}

func (h *Handler) document(uri protocol.DocumentUri) *document {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.documents[uri]
}

func (h *Handler) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) error {
	path, err := uriToPath(uri)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", uri, err)
	}

	doc := h.cachedAnalysis(path, text)

	h.mu.Lock()
	h.documents[uri] = doc
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, uri, doc.diagnostics)
	return nil
}

// cachedAnalysis returns the analysis of text, reusing an earlier one when the
// same content was seen for path. Undo and redo hit this often.
func (h *Handler) cachedAnalysis(path, text string) *document {
	if h.analyses == nil {
		return h.analyze(path, text)
	}

	sum := sha256.Sum256([]byte(text))
	key := path + "@" + hex.EncodeToString(sum[:])
	if doc, ok := h.analyses.Get(key); ok {
		log.Debugf("reusing analysis of %s", path)
		return doc
	}

	doc := h.analyze(path, text)
	h.analyses.Add(key, doc)
	return doc
}

// analyze parses and assembles text. Link errors still leave a usable
// program, so assembly runs whenever parsing produced one.
func (h *Handler) analyze(path, text string) *document {
	doc := &document{}

	program, parseErrors := parser.ParseSource(path, text)
	doc.diagnostics = ConvertParseErrors(parseErrors)
	if program == nil {
		return doc
	}
	doc.program = program

	model, err := abi.Assemble(program, h.cfg)
	if err != nil {
		var ce errors.CompilerError
		if stderrors.As(err, &ce) {
			doc.diagnostics = append(doc.diagnostics, toDiagnostic(ce))
		} else {
			log.Errorf("assembling %s: %s", path, err)
		}
		return doc
	}
	doc.model = model

	doc.diagnostics = append(doc.diagnostics, ConvertCompilerErrors(model.Warnings)...)
	return doc
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) -> C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	log.Debugf("publishing %d diagnostics for %s", len(diagnostics), uri)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func toProtocolPosition(pos ast.Position) protocol.Position {
	return protocol.Position{Line: uint32(max(pos.Line-1, 0)), Character: uint32(max(pos.Column-1, 0))}
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
