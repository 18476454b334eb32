// ABOUTME: Engine controller: sequential state machine over the RAG pipeline
// ABOUTME: One command in flight at a time; progress + one terminal event per command
package core

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docsage/docsage/internal/config"
	"github.com/docsage/docsage/internal/embed"
	"github.com/docsage/docsage/internal/faults"
	"github.com/docsage/docsage/internal/llm"
	"github.com/docsage/docsage/internal/models"
	"github.com/docsage/docsage/internal/retriever"
	"github.com/docsage/docsage/internal/store"
)

// State is the engine's lifecycle position.
type State string

const (
	StateUninitialized      State = "UNINITIALIZED"
	StateInitializing       State = "INITIALIZING"
	StateReady              State = "READY"
	StateProcessingDocument State = "PROCESSING_DOCUMENT"
	StateDocumentReady      State = "DOCUMENT_READY"
	StateProcessingQuery    State = "PROCESSING_QUERY"
	StateAnswerReady        State = "ANSWER_READY"
	StateError              State = "ERROR"
)

// Command is one of the four engine operations.
type Command interface {
	commandName() string
}

// InitCommand configures the engine: embedding model, provider,
// credentials and generation model.
type InitCommand struct {
	Config *config.Config
}

// ProcessDocumentCommand chunks, embeds and stores a document's text.
type ProcessDocumentCommand struct {
	Text string
}

// QueryCommand answers a natural-language question from stored context.
type QueryCommand struct {
	Query string
}

// ClearContextCommand removes all stored chunks.
type ClearContextCommand struct{}

func (InitCommand) commandName() string            { return "initialize" }
func (ProcessDocumentCommand) commandName() string { return "process document" }
func (QueryCommand) commandName() string           { return "query" }
func (ClearContextCommand) commandName() string    { return "clear context" }

// Status is a read-only snapshot of the engine for inspection surfaces.
type Status struct {
	State           State  `json:"state"`
	Provider        string `json:"provider,omitempty"`
	EmbeddingModel  string `json:"embedding_model,omitempty"`
	GenerationModel string `json:"generation_model,omitempty"`
	Chunks          int    `json:"chunks"`
}

// Engine orchestrates chunking, embedding, storage, retrieval and answer
// generation. Commands run strictly sequentially: Submit rejects with
// ErrBusy while an operation is in flight. The chunk store is owned
// exclusively by the engine; the sequential command loop is what
// guarantees single-writer discipline.
type Engine struct {
	mu       sync.Mutex
	busy     bool
	state    State
	cfg      *config.Config
	chunker  *Chunker
	resolver *embed.Resolver
	embedder embed.Embedder
	db       *store.DB
	store    *store.Store
	retr     *retriever.Retriever
}

// NewEngine creates an uninitialized engine.
func NewEngine() *Engine {
	return &Engine{
		state:    StateUninitialized,
		chunker:  NewChunker(),
		resolver: embed.NewResolver(),
	}
}

// State returns the current engine state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Status returns an inspection snapshot. The chunk count is 0 when the
// store is not open yet.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	status := Status{State: e.state}
	if e.cfg != nil {
		status.Provider = e.cfg.Provider
		status.EmbeddingModel = e.cfg.EmbeddingModel
		status.GenerationModel = e.cfg.GenerationModel
	}
	if e.store != nil {
		if count, err := e.store.Count(); err == nil {
			status.Chunks = count
		}
	}
	return status
}

// Close releases the underlying database. Not safe to call while a
// command is in flight.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.db != nil {
		err := e.db.Close()
		e.db = nil
		e.store = nil
		return err
	}
	return nil
}

// Submit dispatches one command. It returns faults.ErrBusy synchronously
// when another command is still in flight; it never queues. The returned
// channel carries zero or more PROGRESS events followed by exactly one
// terminal event, then closes. The caller must drain the channel; the
// progress events themselves may be ignored.
func (e *Engine) Submit(ctx context.Context, cmd Command) (<-chan models.Event, error) {
	e.mu.Lock()
	if e.busy {
		e.mu.Unlock()
		return nil, faults.ErrBusy
	}
	e.busy = true
	e.mu.Unlock()

	events := make(chan models.Event, 8)
	go e.run(ctx, cmd, events)
	return events, nil
}

func (e *Engine) run(ctx context.Context, cmd Command, events chan<- models.Event) {
	defer close(events)
	defer func() {
		e.mu.Lock()
		e.busy = false
		e.mu.Unlock()
	}()
	defer func() {
		// A panicking operation must report, not kill the host process.
		if r := recover(); r != nil {
			e.setState(StateError)
			err := fmt.Errorf("critical engine fault: %v", r)
			events <- models.Event{Type: models.EventError, Message: err.Error(), Err: err}
		}
	}()

	emit := func(ev models.Event) { events <- ev }

	switch c := cmd.(type) {
	case InitCommand:
		e.initialize(ctx, c.Config, emit)
	case ProcessDocumentCommand:
		e.processDocument(ctx, c.Text, emit)
	case QueryCommand:
		e.query(ctx, c.Query, emit)
	case ClearContextCommand:
		e.clearContext(emit)
	default:
		emit(errorEvent(fmt.Errorf("unsupported command %q", cmd.commandName())))
	}
}

func (e *Engine) setState(s State) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
}

func (e *Engine) setStore(db *store.DB, chunkStore *store.Store) {
	e.mu.Lock()
	e.db = db
	e.store = chunkStore
	e.mu.Unlock()
}

// fail transitions to Error and emits the terminal error event.
func (e *Engine) fail(emit func(models.Event), err error) {
	e.setState(StateError)
	emit(errorEvent(err))
}

func errorEvent(err error) models.Event {
	return models.Event{Type: models.EventError, Message: err.Error(), Err: err}
}

func progressEvent(message string) models.Event {
	return models.Event{Type: models.EventProgress, Message: message}
}

// initialize is accepted from any state as long as no command is in
// flight; a reconfiguration simply supersedes the previous one.
func (e *Engine) initialize(ctx context.Context, cfg *config.Config, emit func(models.Event)) {
	if cfg == nil {
		e.fail(emit, fmt.Errorf("initialize: no configuration provided"))
		return
	}

	e.setState(StateInitializing)

	if err := cfg.Validate(); err != nil {
		e.fail(emit, err)
		return
	}

	emit(progressEvent("Initializing database..."))
	if e.db == nil || e.db.Path() != cfg.DBPath {
		if e.db != nil {
			_ = e.db.Close()
		}
		db, err := store.Open(cfg.DBPath)
		if err != nil {
			e.setStore(nil, nil)
			e.fail(emit, &faults.StorageError{Op: "open", Err: err})
			return
		}
		chunkStore, err := store.New(db)
		if err != nil {
			_ = db.Close()
			e.setStore(nil, nil)
			e.fail(emit, err)
			return
		}
		e.setStore(db, chunkStore)
	}
	emit(progressEvent("Database initialized."))

	// Vectors from different embedding models are not comparable: a
	// model change invalidates every stored chunk before the new model
	// becomes active. Provider or generation-model changes do not.
	previous, err := e.store.Generation()
	if err != nil {
		e.fail(emit, err)
		return
	}
	if previous != "" && previous != cfg.EmbeddingModel {
		emit(progressEvent(fmt.Sprintf("Embedding model changed. Clearing old context for %s...", previous)))
		if err := e.store.Clear(); err != nil {
			e.fail(emit, err)
			return
		}
	}

	emit(progressEvent(fmt.Sprintf("Loading embedding model: %s... (this may take a moment)", cfg.EmbeddingModel)))
	embedder, err := e.resolver.Resolve(ctx, cfg)
	if err != nil {
		e.fail(emit, err)
		return
	}
	emit(progressEvent(fmt.Sprintf("Embedding model %s loaded.", cfg.EmbeddingModel)))

	if err := e.store.SetGeneration(cfg.EmbeddingModel); err != nil {
		e.fail(emit, err)
		return
	}

	// Chunks persisted by an earlier run are immediately queryable
	next := StateReady
	if count, err := e.store.Count(); err == nil && count > 0 {
		next = StateDocumentReady
	}

	e.mu.Lock()
	e.cfg = cfg
	e.embedder = embedder
	e.retr = retriever.New(e.store)
	e.state = next
	e.mu.Unlock()

	generation := cfg.GenerationModel
	if generation == "" {
		generation = "default"
	}
	emit(models.Event{
		Type: models.EventWorkerReady,
		Message: fmt.Sprintf("Engine ready. Provider: %s, Embedding: %s, Generation: %s.",
			cfg.Provider, cfg.EmbeddingModel, generation),
	})
}

func (e *Engine) processDocument(ctx context.Context, text string, emit func(models.Event)) {
	switch e.State() {
	case StateReady, StateDocumentReady, StateAnswerReady:
	default:
		emit(errorEvent(fmt.Errorf("cannot process a document in state %s", e.State())))
		return
	}
	if strings.TrimSpace(text) == "" {
		emit(errorEvent(fmt.Errorf("no text provided for document processing")))
		return
	}
	// A failed initialize can leave the store open without an embedder;
	// clearing context afterwards reports Ready. Reject rather than panic.
	if e.embedder == nil {
		emit(errorEvent(fmt.Errorf("cannot process a document: %w", faults.ErrEmbeddingUnavailable)))
		return
	}

	e.setState(StateProcessingDocument)

	chunks := e.chunker.Chunk(text)
	if len(chunks) == 0 {
		emit(progressEvent(fmt.Sprintf("No suitable text chunks found after filtering (min length %d chars).", MinChunkLength)))
		e.setState(StateDocumentReady)
		emit(models.Event{Type: models.EventDoneProcessing, Message: "Document processed.", Stored: 0})
		return
	}

	emit(progressEvent(fmt.Sprintf("Embedding %d chunks with %s...", len(chunks), e.embedder.ModelID())))
	for i, chunkText := range chunks {
		if i%5 == 0 || i == len(chunks)-1 {
			emit(progressEvent(fmt.Sprintf("Embedding chunk %d of %d...", i+1, len(chunks))))
		}

		vector, err := e.embedder.Embed(ctx, chunkText)
		if err != nil {
			e.fail(emit, fmt.Errorf("failed to embed chunk %d: %w", i+1, err))
			return
		}
		chunk := models.Chunk{
			ID:        "chunk_" + uuid.New().String(),
			Text:      chunkText,
			Vector:    vector,
			CreatedAt: time.Now(),
		}
		if err := e.store.Put(chunk); err != nil {
			e.fail(emit, err)
			return
		}
	}

	emit(progressEvent("All chunks processed."))
	e.setState(StateDocumentReady)
	emit(models.Event{Type: models.EventDoneProcessing, Message: "Document processed.", Stored: len(chunks)})
}

func (e *Engine) query(ctx context.Context, query string, emit func(models.Event)) {
	switch e.State() {
	case StateDocumentReady, StateAnswerReady:
	default:
		emit(errorEvent(fmt.Errorf("cannot answer a query in state %s (process a document first)", e.State())))
		return
	}
	if strings.TrimSpace(query) == "" {
		emit(errorEvent(fmt.Errorf("no query provided")))
		return
	}

	e.setState(StateProcessingQuery)

	// The provider adapter is built per query so a missing credential is
	// caught here, before any network call, and named precisely.
	generator, err := llm.NewGenerator(ctx, e.cfg)
	if err != nil {
		e.fail(emit, err)
		return
	}

	answerGen := NewAnswerGenerator(e.embedder, e.retr, generator, e.cfg.TopK, func(message string) {
		emit(progressEvent(message))
	})
	answer, err := answerGen.Generate(ctx, query)
	if err != nil {
		e.fail(emit, fmt.Errorf("error generating answer: %w", err))
		return
	}

	e.setState(StateAnswerReady)
	emit(models.Event{Type: models.EventAnswer, Message: "Answer generated.", Answer: answer})
}

func (e *Engine) clearContext(emit func(models.Event)) {
	if e.store == nil {
		emit(errorEvent(fmt.Errorf("engine not initialized")))
		return
	}

	emit(progressEvent("Clearing stored document context..."))
	if err := e.store.Clear(); err != nil {
		e.fail(emit, err)
		return
	}

	e.setState(StateReady)
	emit(models.Event{Type: models.EventContextCleared, Message: "Document context cleared."})
}
