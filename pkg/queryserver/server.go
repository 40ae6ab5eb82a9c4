package queryserver

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	iconfig "github.com/bastiangx/querix/internal/config"
	"github.com/bastiangx/querix/internal/logger"
	"github.com/bastiangx/querix/pkg/queryparser"
	"github.com/bastiangx/querix/pkg/queryterm"
	"github.com/bastiangx/querix/pkg/searchctx"
	"github.com/bastiangx/querix/pkg/tokenstream"
)

// Server handles parse requests read from stdin and writes responses to
// stdout, one Context per request (spec.md §3 lifecycle).
type Server struct {
	configPath string
	config     *iconfig.Config

	in  io.Reader
	out io.Writer

	decoder      *msgpack.Decoder
	writeMutex   sync.Mutex
	requestCount int64
	logr         *log.Logger
}

// NewServer creates a Server reading from stdin and writing to stdout,
// configured from cfg (reloaded periodically from configPath).
func NewServer(cfg *iconfig.Config, configPath string) *Server {
	return NewServerIO(cfg, configPath, os.Stdin, os.Stdout)
}

// NewServerIO creates a Server bound to explicit in/out streams, letting
// tests exercise the protocol without touching the real stdin/stdout. The
// server's logger is built here, not in a package var, so it picks up
// whatever global log level cmd/querix/main.go set before constructing it.
func NewServerIO(cfg *iconfig.Config, configPath string, in io.Reader, out io.Writer) *Server {
	s := &Server{
		configPath: configPath,
		config:     cfg,
		in:         in,
		out:        out,
		logr:       logger.Default("server"),
	}
	s.decoder = msgpack.NewDecoder(s.in)
	return s
}

// reloadConfig reloads configuration from the TOML file on disk.
func (s *Server) reloadConfig() error {
	newConfig, err := iconfig.LoadConfig(s.configPath)
	if err != nil {
		s.logr.Warnf("Failed to reload config, keeping current: %v", err)
		return err
	}
	s.config = newConfig
	s.logr.Debugf("Config reloaded from: %s", s.configPath)
	return nil
}

// Start begins listening for parse requests until the input stream closes.
func (s *Server) Start() error {
	s.logr.Debug("Starting MessagePack query server")
	for {
		if err := s.processRequest(); err != nil {
			if err == io.EOF {
				s.logr.Debug("Client disconnected")
				return nil
			}
			continue
		}
	}
}

func (s *Server) processRequest() error {
	s.requestCount++
	if s.requestCount%100 == 0 {
		s.reloadConfig()
	}

	var request ParseRequest
	s.logr.Debug("Waiting for request...")
	if err := s.decoder.Decode(&request); err != nil {
		s.logr.Debugf("Decode error: %v", err)
		return err
	}

	if request.Query == "" {
		return s.sendError(request.ID, "empty query", 400)
	}

	limit := s.config.WordsLimit()
	if request.Limit > 0 {
		requestLimit := request.Limit
		limit = &requestLimit
	}

	start := time.Now()
	ctx := searchctx.New(s.config.Source(), s.config.Limits())
	tok := tokenstream.Tokenize(request.Query, nil)
	located, err := queryparser.Parse(ctx, tok, limit)
	elapsed := time.Since(start)

	if err != nil {
		return s.sendError(request.ID, err.Error(), 500)
	}

	terms := make([]TermView, len(located))
	for i, lq := range located {
		terms[i] = termView(ctx, lq)
	}

	return s.sendResponse(&ParseResponse{
		ID:        request.ID,
		Terms:     terms,
		Count:     len(terms),
		TimeTaken: elapsed.Microseconds(),
	})
}

func termView(ctx *searchctx.Context, lq queryterm.LocatedQueryTerm) TermView {
	term, ok := ctx.Term(lq.Value)
	if !ok {
		return TermView{Start: lq.Positions.Start, End: lq.Positions.End}
	}

	var surface string
	if term.IsPhrase() {
		phrase, _ := ctx.Phrase(*term.ZeroTypo.Phrase)
		surface = phrase.Describe(ctx.Word)
	} else {
		surface, _ = ctx.Word(term.Original)
	}

	return TermView{
		Surface: surface,
		Phrase:  term.IsPhrase(),
		Ngram:   term.IsNgram(),
		Start:   lq.Positions.Start,
		End:     lq.Positions.End,
		Typos:   term.MaxNbrTypos,
		Prefix:  term.IsPrefix,
	}
}

// sendResponse encodes and writes response atomically.
func (s *Server) sendResponse(response any) error {
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()

	var buf bytes.Buffer
	encoder := msgpack.NewEncoder(&buf)
	if err := encoder.Encode(response); err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}

	if _, err := s.out.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	if f, ok := s.out.(*os.File); ok {
		f.Sync()
	}
	return nil
}

func (s *Server) sendError(id, message string, code int) error {
	return s.sendResponse(&ParseError{ID: id, Error: message, Code: code})
}
