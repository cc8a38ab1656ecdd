package midich

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"chartsmith/internal/config"
	"chartsmith/internal/logging"
	"chartsmith/internal/services"
)

const (
	fileInputSelector = `input[type="file"]`
	lifecycleIdle     = "networkIdle"
)

// Result is the artifact the converter page saved.
type Result struct {
	Filename string
	Data     []byte
}

// Converter turns one MIDI file into a saved chart artifact.
type Converter interface {
	Convert(ctx context.Context, inputPath string) (Result, error)
}

// Options configures the browser and per-conversion deadlines.
type Options struct {
	ConverterURL      string
	ExecPath          string
	Headless          bool
	NoSandbox         bool
	DisableDevShm     bool
	ConvertTimeout    time.Duration
	NavigationTimeout time.Duration
}

// OptionsFromConfig maps the [browser] section onto session options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		ConverterURL:      cfg.ConverterURL(),
		ExecPath:          cfg.Browser.ExecPath,
		Headless:          cfg.Browser.Headless,
		NoSandbox:         cfg.Browser.NoSandbox,
		DisableDevShm:     cfg.Browser.DisableDevShm,
		ConvertTimeout:    cfg.ConvertTimeout(),
		NavigationTimeout: cfg.NavigationTimeout(),
	}
}

// Session drives a single headless Chrome instance across many conversions.
type Session struct {
	opts   Options
	logger *slog.Logger

	mu            sync.Mutex
	browserCtx    context.Context
	cancelAlloc   context.CancelFunc
	cancelBrowser context.CancelFunc
}

// NewSession constructs an unstarted session.
func NewSession(opts Options, logger *slog.Logger) *Session {
	return &Session{
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "midich"),
	}
}

func (s *Session) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.Flag("headless", s.opts.Headless),
		chromedp.Flag("allow-file-access-from-files", true),
	)
	if s.opts.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	if s.opts.DisableDevShm {
		opts = append(opts, chromedp.Flag("disable-dev-shm-usage", true))
	}
	if s.opts.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(s.opts.ExecPath))
	}
	return opts
}

// Start launches the browser. The browser lives until Close or until ctx ends.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.browserCtx != nil {
		return nil
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, s.allocatorOptions()...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			s.logger.Debug(fmt.Sprintf(format, args...))
		}),
		chromedp.WithErrorf(func(format string, args ...any) {
			s.logger.Debug("browser protocol error", logging.String("detail", fmt.Sprintf(format, args...)))
		}),
	)
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return services.Wrap(services.ErrExternalTool, "convert", "launch browser", "check browser.exec_path or install chromium", err)
	}

	s.browserCtx = browserCtx
	s.cancelAlloc = cancelAlloc
	s.cancelBrowser = cancelBrowser
	s.logger.Info("browser session started",
		logging.String(logging.FieldEventType, "browser_started"),
		logging.Bool("headless", s.opts.Headless),
	)
	return nil
}

// Close shuts the browser down. It is safe to call more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.browserCtx == nil {
		return nil
	}
	err := chromedp.Cancel(s.browserCtx)
	s.cancelBrowser()
	s.cancelAlloc()
	s.browserCtx = nil
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("close browser: %w", err)
	}
	s.logger.Info("browser session closed", logging.String(logging.FieldEventType, "browser_closed"))
	return nil
}

func (s *Session) browser() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.browserCtx
}

// Convert loads the converter page in a fresh tab, uploads inputPath and
// returns the first file the page saves.
func (s *Session) Convert(ctx context.Context, inputPath string) (Result, error) {
	browserCtx := s.browser()
	if browserCtx == nil {
		return Result{}, services.Wrap(services.ErrExternalTool, "convert", "open tab", "browser session not started", nil)
	}
	abs, err := filepath.Abs(inputPath)
	if err != nil {
		return Result{}, services.Wrap(services.ErrFilesystem, "convert", "resolve input", inputPath, err)
	}

	tabCtx, closeTab := chromedp.NewContext(browserCtx)
	defer closeTab()
	stop := context.AfterFunc(ctx, closeTab)
	defer stop()

	if err := chromedp.Run(tabCtx); err != nil {
		return Result{}, s.callerErr(ctx, services.Wrap(services.ErrExternalTool, "convert", "open tab", "", err))
	}

	saves := newCapture()
	idle := make(chan cdp.LoaderID, 16)
	chromedp.ListenTarget(tabCtx, func(ev any) {
		switch e := ev.(type) {
		case *runtime.EventBindingCalled:
			if e.Name != bindingName {
				return
			}
			res, err := decodePayload(e.Payload)
			if !saves.offer(res, err) {
				s.logger.Debug("ignoring additional save", logging.String("file", res.Filename))
			}
		case *page.EventLifecycleEvent:
			if e.Name != lifecycleIdle {
				return
			}
			select {
			case idle <- e.LoaderID:
			default:
			}
		}
	})

	if err := chromedp.Run(tabCtx,
		runtime.AddBinding(bindingName),
		page.SetLifecycleEventsEnabled(true),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(saveHookScript).Do(ctx)
			return err
		}),
	); err != nil {
		return Result{}, s.callerErr(ctx, services.Wrap(services.ErrExternalTool, "convert", "install save hook", "", err))
	}

	if err := s.navigate(tabCtx, idle); err != nil {
		return Result{}, s.callerErr(ctx, err)
	}

	var nodes []*cdp.Node
	if err := chromedp.Run(tabCtx, chromedp.Nodes(fileInputSelector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0))); err != nil {
		return Result{}, s.callerErr(ctx, services.Wrap(services.ErrExternalTool, "convert", "query file input", "", err))
	}
	if len(nodes) == 0 {
		return Result{}, services.Wrap(services.ErrPrecondition, "convert", "locate file input", "converter page has no file input", nil)
	}

	deadline := time.Now().Add(s.opts.ConvertTimeout)
	if err := chromedp.Run(tabCtx, dom.SetFileInputFiles([]string{abs}).WithBackendNodeID(nodes[0].BackendNodeID)); err != nil {
		return Result{}, s.callerErr(ctx, services.Wrap(services.ErrExternalTool, "convert", "upload input", "", err))
	}
	s.logger.Debug("input uploaded", logging.String("input", abs))

	res, err := saves.wait(ctx, deadline)
	if err != nil {
		return Result{}, err
	}
	s.logger.Debug("save captured",
		logging.String("file", res.Filename),
		logging.Int("bytes", len(res.Data)),
	)
	return res, nil
}

// navigate opens the converter page and waits for its network to go idle.
func (s *Session) navigate(tabCtx context.Context, idle <-chan cdp.LoaderID) error {
	var loaderID cdp.LoaderID
	if err := chromedp.Run(tabCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		_, id, errorText, _, err := page.Navigate(s.opts.ConverterURL).Do(ctx)
		if err != nil {
			return err
		}
		if errorText != "" {
			return errors.New(errorText)
		}
		loaderID = id
		return nil
	})); err != nil {
		return services.Wrap(services.ErrPrecondition, "convert", "load converter", s.opts.ConverterURL, err)
	}

	timer := time.NewTimer(s.opts.NavigationTimeout)
	defer timer.Stop()
	for {
		select {
		case id := <-idle:
			if id == loaderID {
				return nil
			}
		case <-timer.C:
			return services.Wrap(services.ErrTimeout, "convert", "load converter", "page never reached network idle", nil)
		case <-tabCtx.Done():
			return tabCtx.Err()
		}
	}
}

// callerErr reports the caller's cancellation instead of the tab error it caused.
func (s *Session) callerErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}
