// swipe-server serves the game over SSH, one independent run per
// connection. Build:
//
//	go build -o swipe-server ./cmd/server
//
// Usage:
//
//	./swipe-server [--port 2222] [--key server_host_key] [--config swipe.yaml]
//
// Connect with:
//
//	ssh -t -p 2222 localhost
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"
	"unicode"
	"unicode/utf8"

	"swipe/assets"
	"swipe/internal/config"
	"swipe/internal/game"
	"swipe/internal/logging"
	internalssh "swipe/internal/ssh"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	"github.com/google/uuid"
	"go.uber.org/zap"
	xssh "golang.org/x/crypto/ssh"
	"golang.org/x/sync/errgroup"
)

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "Path to the PEM-encoded host key (auto-generated if absent)")
	cfgPath := flag.String("config", "", "Path to a YAML config file")
	flag.Parse()

	if err := run(*port, *keyFile, *cfgPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(port int, keyFile, cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	log, restore, err := logging.Install(cfg.Log)
	if err != nil {
		return err
	}
	defer restore()
	defer func() { _ = log.Sync() }()

	atlas, err := assets.Open(cfg.Atlas)
	if err != nil {
		return err
	}
	signer, err := loadOrCreateHostKey(keyFile, log)
	if err != nil {
		return err
	}

	h := &handler{cfg: cfg, atlas: atlas, log: log}
	srv := &gossh.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: h.handleSession,
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// Accept any authentication; add gossh.PublicKeyAuth for real auth.
		HostSigners: []gossh.Signer{signer},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		log.Info("listening", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, gossh.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return srv.Close()
		}
		return nil
	})
	return eg.Wait()
}

// ─── sessions ───────────────────────────────────────────────────────────────

// handler runs one game per SSH connection.
type handler struct {
	cfg   config.Config
	atlas *assets.Atlas
	log   *zap.Logger
}

// handleSession is the gliderlabs SSH handler for one connection.
// It blocks for the duration of the game so the SSH session stays open.
func (h *handler) handleSession(s gossh.Session) {
	log := h.log.With(
		zap.String("session", uuid.NewString()),
		zap.String("user", sanitizeName(s.User())),
		zap.Stringer("remote", s.RemoteAddr()))

	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintln(s, "This game requires a PTY. Connect with: ssh -t -p 2222 <host>")
		return
	}
	term := sessionTerm(s.Environ())

	// TERM must be set in the process environment before NewTerminfoScreenFromTty.
	tty := internalssh.NewSessionTty(s, pty, winCh)
	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		log.Warn("terminal setup failed", zap.String("term", term), zap.Error(err))
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}
	if err := screen.Init(); err != nil {
		log.Warn("screen init failed", zap.Error(err))
		fmt.Fprintf(s, "Screen init failed: %v\n", err)
		return
	}
	defer screen.Fini()

	g, err := game.New(screen, h.cfg, h.atlas, log)
	if err != nil {
		log.Error("start game", zap.Error(err))
		return
	}
	log.Info("session started", zap.String("term", term))
	if err := g.Run(s.Context()); err != nil {
		log.Error("game failed", zap.Error(err))
	}
	log.Info("session ended")
}

// termMu protects os.Setenv("TERM") around screen creation.
var termMu sync.Mutex

// allowedTerms are the TERM values accepted from clients; anything else
// falls back to defaultTerm.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode-256color": true,
}

const defaultTerm = "xterm-256color"

// sessionTerm picks the terminal type from the session environment.
func sessionTerm(environ []string) string {
	for _, env := range environ {
		if term, ok := strings.CutPrefix(env, "TERM="); ok && allowedTerms[term] {
			return term
		}
	}
	return defaultTerm
}

const maxNameLen = 16

// sanitizeName strips non-printable runes from an SSH user name and limits
// it to maxNameLen bytes without splitting a rune.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if !unicode.IsPrint(r) || r == utf8.RuneError {
			continue
		}
		if b.Len()+utf8.RuneLen(r) > maxNameLen {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ─── host key ───────────────────────────────────────────────────────────────

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, log *zap.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.Info("loaded host key", zap.String("path", path))
			return signer, nil
		}
	}

	log.Info("generating host key", zap.String("path", path))
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	// Persist for next run (non-fatal if it fails).
	if pemBlock, err := xssh.MarshalPrivateKey(key, "swipe server"); err == nil {
		if err := os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600); err != nil {
			log.Warn("persist host key", zap.Error(err))
		}
	}
	return signer, nil
}
