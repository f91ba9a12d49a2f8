package services

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pagelift/pagelift-cli/internal/bundle"
	"github.com/pagelift/pagelift-cli/internal/core/domain"
	"github.com/pagelift/pagelift-cli/internal/core/ports/driven"
	"github.com/pagelift/pagelift-cli/internal/core/ports/driving"
	"github.com/pagelift/pagelift-cli/internal/logger"
)

// Step titles, one per logical phase of a publish attempt.
const (
	stepBuild    = "Build"
	stepDiscover = "Discover"
	stepAssemble = "Assemble"
	stepSuggest  = "Suggest"
	stepUpload   = "Upload"
	stepFinalize = "Finalize"
)

// Ensure Launcher implements the interface.
var _ driving.Launcher = (*Launcher)(nil)

// Launcher drives the publish state machine: optional build task, protocol
// discovery, bundle assembly, the suggest/upload/finalize exchange, the
// chunked delivery of missing content, and the interactive team sub-flow.
//
// One Launcher serves any number of concurrent attempts; attempts are
// tracked independently by launch key and share no mutable state beyond
// the cancellation registry.
type Launcher struct {
	discoverer driven.Discoverer
	clients    driven.ClientFactory
	runner     driven.TaskRunner
	resolver   driven.TeamResolver
	history    driven.HistoryStore

	budget int

	// Cancellation registry: launch key to the cancel func of the
	// in-flight attempt. Entries live exactly as long as the attempt.
	mu     sync.Mutex
	active map[string]context.CancelFunc
}

// NewLauncher creates a launcher. The discoverer and client factory are
// required; runner, resolver and history may be nil, degrading the build
// step, interactive team resolution and attempt recording respectively.
func NewLauncher(
	discoverer driven.Discoverer,
	clients driven.ClientFactory,
	runner driven.TaskRunner,
	resolver driven.TeamResolver,
	history driven.HistoryStore,
) *Launcher {
	return &Launcher{
		discoverer: discoverer,
		clients:    clients,
		runner:     runner,
		resolver:   resolver,
		history:    history,
		budget:     DefaultChunkBudget,
		active:     make(map[string]context.CancelFunc),
	}
}

// Launch runs one publish attempt to completion.
func (l *Launcher) Launch(ctx context.Context, req driving.LaunchRequest) domain.LaunchResult {
	key := domain.LaunchKey(req.Project.Path, req.Site.Name)
	ctx, cancel := context.WithCancel(ctx)
	l.register(key, cancel)
	defer l.unregister(key)
	defer cancel()

	steps := &stepLog{events: req.Events}
	if req.Events != nil {
		defer close(req.Events)
	}

	started := time.Now()
	attempt := &launchAttempt{
		req:   req,
		steps: steps,
		scope: driven.RequestScope{
			Credential: req.Credential,
			TeamID:     req.Site.TeamID,
			Domain:     req.Site.Domain,
		},
	}

	result := l.run(ctx, attempt)
	l.record(ctx, attempt, result, started)

	logger.Info("Launch %s for %s: %s", key, req.Site.Domain, result.Kind)
	return result
}

// Cancel aborts the in-flight attempt for a launch key.
func (l *Launcher) Cancel(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	cancel, ok := l.active[key]
	if ok {
		cancel()
	}
	return ok
}

// launchAttempt carries the mutable state of one publish attempt between
// phases, instead of threading it through a single long method.
type launchAttempt struct {
	req   driving.LaunchRequest
	steps *stepLog
	scope driven.RequestScope

	bundle  *domain.Bundle
	encoded []byte
	// bundleID is the hash of the serialized tree, replaced by the
	// server-assigned id when the whole-bundle path is taken.
	bundleID []byte
}

// run executes the phases in order and classifies the terminal error.
// Failure at any phase stops the sequence; no later phase runs.
func (l *Launcher) run(ctx context.Context, a *launchAttempt) domain.LaunchResult {
	err := l.runPhases(ctx, a)
	if err == nil {
		return domain.LaunchResult{
			Kind:    domain.ResultSucceeded,
			Message: fmt.Sprintf("published to %s", a.scope.Domain),
		}
	}

	if errors.Is(err, domain.ErrCancelled) || errors.Is(err, context.Canceled) {
		a.steps.fail("cancelled")
		return domain.LaunchResult{Kind: domain.ResultCancelled, Message: "cancelled"}
	}

	a.steps.fail(err.Error())
	return domain.LaunchResult{Kind: domain.ResultFailed, Message: err.Error(), Err: err}
}

func (l *Launcher) runPhases(ctx context.Context, a *launchAttempt) error {
	if err := l.runBuild(ctx, a); err != nil {
		return err
	}
	endpoint, err := l.discover(ctx, a)
	if err != nil {
		return err
	}
	if err := l.assemble(ctx, a); err != nil {
		return err
	}

	api := l.clients.New(endpoint)
	suggested, err := l.suggest(ctx, api, a)
	if err != nil {
		return err
	}
	if err := l.deliver(ctx, api, a, suggested); err != nil {
		return err
	}
	return l.finalize(ctx, api, a)
}

// runBuild executes the project's build task, when one is configured.
// A non-zero exit aborts the publish before any network activity.
func (l *Launcher) runBuild(ctx context.Context, a *launchAttempt) error {
	task := a.req.Project.BuildTask
	if task == "" {
		return nil
	}
	if err := checkCancelled(ctx); err != nil {
		return err
	}

	a.steps.begin(stepBuild)
	if l.runner == nil {
		return fmt.Errorf("%w: no task runner configured for build task %q", domain.ErrBuildFailed, task)
	}
	a.steps.logf("running task %q", task)

	result, err := l.runner.Run(ctx, a.req.Project.Path, task)
	if err != nil {
		return classify(ctx, fmt.Errorf("run build task: %w", err))
	}
	a.steps.lines(result.Output)
	if !result.Succeeded() {
		return fmt.Errorf("%w: task %q exited with code %d", domain.ErrBuildFailed, task, result.ExitCode)
	}
	a.steps.complete()
	return nil
}

// discover resolves the site's domain to a protocol endpoint.
func (l *Launcher) discover(ctx context.Context, a *launchAttempt) (*domain.Endpoint, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	a.steps.begin(stepDiscover)

	endpoint, err := l.discoverer.Discover(ctx, a.scope.Domain)
	if err != nil {
		return nil, classify(ctx, err)
	}
	a.steps.logf("protocol endpoint %s", endpoint.BaseURL)
	a.steps.complete()
	return endpoint, nil
}

// assemble builds the bundle and computes its identifier.
func (l *Launcher) assemble(ctx context.Context, a *launchAttempt) error {
	if err := checkCancelled(ctx); err != nil {
		return err
	}
	a.steps.begin(stepAssemble)

	root, err := bundle.ResolveRoot(a.req.Project)
	if err != nil {
		return err
	}
	b, err := bundle.Build(root)
	if err != nil {
		return fmt.Errorf("assemble bundle: %w", err)
	}
	encoded, err := bundle.Encode(b.Root)
	if err != nil {
		return err
	}

	a.bundle = b
	a.encoded = encoded
	a.bundleID = bundle.Identifier(encoded)
	a.steps.logf("%d files, %d distinct blobs, %d bytes",
		b.Root.FileCount(), len(b.Table), b.Table.TotalSize())
	a.steps.logf("bundle %s", hex.EncodeToString(a.bundleID))
	a.steps.complete()
	return nil
}

// suggest proposes the bundle identifier to the destination. When the
// response carries the team-required marker, the team sub-flow runs and
// suggest is retried exactly once with the resolved team id; a second
// occurrence of the marker is a hard failure.
func (l *Launcher) suggest(
	ctx context.Context, api driven.PublishAPI, a *launchAttempt,
) (*driven.SuggestResponse, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	a.steps.begin(stepSuggest)

	resp, err := api.Suggest(ctx, a.scope, a.bundleID)
	if err != nil {
		return nil, classify(ctx, err)
	}
	l.surface(a.steps, resp.Errors, resp.Warnings, resp.Messages)

	if domain.TeamRequired(resp.Errors) {
		a.steps.pause("waiting for team selection")
		teamID, err := l.resolveTeam(ctx, api, a)
		if err != nil {
			return nil, err
		}
		a.scope.TeamID = teamID
		a.steps.resume()
		a.steps.logf("retrying with team %s", teamID)

		resp, err = api.Suggest(ctx, a.scope, a.bundleID)
		if err != nil {
			return nil, classify(ctx, err)
		}
		l.surface(a.steps, resp.Errors, resp.Warnings, resp.Messages)
		if domain.TeamRequired(resp.Errors) {
			return nil, fmt.Errorf("%w: still reported after team selection", domain.ErrTeamRequired)
		}
	}

	a.steps.complete()
	return resp, nil
}

// resolveTeam runs the interactive team sub-flow: fetch the available
// teams, present them, and loop on refresh or create requests until the
// user selects a team or aborts.
func (l *Launcher) resolveTeam(
	ctx context.Context, api driven.PublishAPI, a *launchAttempt,
) (string, error) {
	if l.resolver == nil {
		return "", domain.ErrTeamUnresolved
	}

	for {
		if err := checkCancelled(ctx); err != nil {
			return "", err
		}
		list, err := api.Teams(ctx, a.scope)
		if err != nil {
			return "", classify(ctx, fmt.Errorf("fetch teams: %w", err))
		}
		a.steps.logf("%d teams available", len(list.Teams))

		selection, err := l.resolver.Resolve(ctx, *list)
		if err != nil {
			return "", classify(ctx, fmt.Errorf("resolve team: %w", err))
		}

		switch selection.Kind {
		case domain.TeamSelected:
			return selection.TeamID, nil
		case domain.TeamRefreshRequested:
			a.steps.logf("refreshing team list")
		case domain.TeamCreateRequested:
			a.steps.logf("create a team at %s, then continuing", list.ManageURL)
		case domain.TeamCancelled:
			return "", fmt.Errorf("%w: team selection cancelled", domain.ErrTeamUnresolved)
		default:
			return "", fmt.Errorf("unknown team selection kind %q", selection.Kind)
		}
	}
}

// deliver gets the bundle's content to the server. When the bundle is not
// yet known, the whole serialized tree goes up in one request; any missing
// content reported either way is delivered in size-bounded chunks.
func (l *Launcher) deliver(
	ctx context.Context, api driven.PublishAPI, a *launchAttempt, suggested *driven.SuggestResponse,
) error {
	if err := checkCancelled(ctx); err != nil {
		return err
	}
	a.steps.begin(stepUpload)

	missing := suggested.Missing
	if !suggested.Present {
		a.steps.logf("bundle unknown to server, uploading tree (%d bytes)", len(a.encoded))
		resp, err := api.UploadBundle(ctx, a.scope, a.encoded)
		if err != nil {
			return classify(ctx, err)
		}
		l.surface(a.steps, resp.Errors, resp.Warnings, resp.Messages)
		if len(resp.BundleID) > 0 {
			a.bundleID = resp.BundleID
		}
		missing = resp.Missing
	}

	if len(missing) == 0 {
		a.steps.logf("content already present")
		a.steps.complete()
		return nil
	}

	if err := l.uploadMissing(ctx, api, a, missing); err != nil {
		return err
	}
	a.steps.complete()
	return nil
}

// uploadMissing delivers the missing blobs chunk by chunk, sequentially,
// aborting on the first failure or cancellation.
func (l *Launcher) uploadMissing(
	ctx context.Context, api driven.PublishAPI, a *launchAttempt, missing []string,
) error {
	chunks, err := planChunks(missing, a.bundle.Table, l.budget)
	if err != nil {
		return err
	}
	a.steps.logf("uploading %d blobs in %d chunks", len(missing), len(chunks))

	for i, chunk := range chunks {
		if err := checkCancelled(ctx); err != nil {
			return err
		}
		if err := api.UploadMissing(ctx, a.scope, chunkBytes(chunk)); err != nil {
			return classify(ctx, fmt.Errorf("upload chunk %d/%d: %w", i+1, len(chunks), err))
		}
		a.steps.logf("chunk %d/%d uploaded (%d blobs, %d bytes)",
			i+1, len(chunks), len(chunk), chunkSize(chunk))
	}
	return nil
}

// finalize commits the bundle as the live snapshot. A team-required error
// here means the scope resolved during suggest did not stick - a logic
// error reported distinctly from ordinary finalize failure.
func (l *Launcher) finalize(ctx context.Context, api driven.PublishAPI, a *launchAttempt) error {
	if err := checkCancelled(ctx); err != nil {
		return err
	}
	a.steps.begin(stepFinalize)

	resp, err := api.Finalize(ctx, a.scope, a.bundleID)
	if err != nil {
		return classify(ctx, err)
	}
	l.surface(a.steps, resp.Errors, resp.Warnings, resp.Messages)

	if domain.TeamRequired(resp.Errors) {
		return fmt.Errorf("%w: reported at finalize, must be resolved during suggest", domain.ErrTeamRequired)
	}
	if !resp.Committed {
		if len(resp.Errors) > 0 {
			return fmt.Errorf("finalize rejected: %s", strings.Join(resp.Errors, "; "))
		}
		return errors.New("finalize rejected")
	}
	a.steps.logf("live snapshot updated")
	a.steps.complete()
	return nil
}

// surface logs protocol-reported diagnostics into the active step. Apart
// from the team-required marker these are advisory and never fatal.
func (l *Launcher) surface(steps *stepLog, errs, warnings, messages []string) {
	for _, e := range errs {
		steps.logf("server error: %s", e)
	}
	for _, w := range warnings {
		steps.logf("server warning: %s", w)
	}
	for _, m := range messages {
		steps.logf("server: %s", m)
	}
}

// record persists the attempt outcome when a history store is configured.
func (l *Launcher) record(
	ctx context.Context, a *launchAttempt, result domain.LaunchResult, started time.Time,
) {
	if l.history == nil {
		return
	}
	rec := domain.LaunchRecord{
		ID:        uuid.NewString(),
		Project:   a.req.Project.Name,
		Site:      a.req.Site.Name,
		Domain:    a.req.Site.Domain,
		Result:    result.Kind,
		Message:   result.Message,
		StartedAt: started,
		EndedAt:   time.Now(),
	}
	if len(a.bundleID) > 0 {
		rec.BundleHash = hex.EncodeToString(a.bundleID)
	}
	// Recording is best effort; use a fresh context so a cancelled attempt
	// is still recorded.
	if err := l.history.Record(context.WithoutCancel(ctx), rec); err != nil {
		logger.Warn("Failed to record launch: %v", err)
	}
}

func (l *Launcher) register(key string, cancel context.CancelFunc) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.active[key] = cancel
}

func (l *Launcher) unregister(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.active, key)
}

// checkCancelled reports a pending cancellation as domain.ErrCancelled.
func checkCancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return domain.ErrCancelled
	default:
		return nil
	}
}

// classify converts errors that raced a cancellation into ErrCancelled so
// an abandoned network call is reported as cancellation, not failure.
func classify(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return domain.ErrCancelled
	}
	return err
}
