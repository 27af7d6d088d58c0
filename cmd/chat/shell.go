package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ai-tutor-be/internal/dto"
	"ai-tutor-be/internal/service"
	"ai-tutor-be/pkg/events"
)

var (
	promptColor = color.New(color.FgCyan, color.Bold)
	infoColor   = color.New(color.FgHiBlack)
	errColor    = color.New(color.FgRed)
)

func warn(format string, args ...interface{}) {
	errColor.Fprintf(os.Stderr, format+"\n", args...)
}

type printer struct {
	renderer *glamour.TermRenderer
}

func newPrinter() *printer {
	if plain {
		return &printer{}
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return &printer{}
	}
	return &printer{renderer: r}
}

func (p *printer) reply(res *dto.SendChatResponse) {
	out := res.Reply
	if p.renderer != nil {
		if rendered, err := p.renderer.Render(res.Reply); err == nil {
			out = rendered
		}
	}
	fmt.Println(strings.TrimRight(out, "\n"))
	infoColor.Printf("[%s · %s]\n", res.Mode, res.Intent)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	container, log, err := setup(ctx, false)
	if err != nil {
		return err
	}
	defer log.Sync()
	defer container.Close()

	res, err := container.ChatService.SendChat(ctx, &dto.SendChatRequest{SessionId: sessionID, Chat: strings.Join(args, " ")})
	if err != nil {
		return err
	}
	newPrinter().reply(res)
	return nil
}

func runShell(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	container, log, err := setup(ctx, !noWatch)
	if err != nil {
		return err
	}
	defer log.Sync()
	defer container.Close()

	if container.Watcher != nil {
		go func() {
			if err := container.Watcher.Run(ctx); err != nil {
				warn("Surveillance des documents arrêtée : %v", err)
			}
		}()
	}

	sh := &shell{
		chat:    container.ChatService,
		reindex: container.ReindexService,
		out:     newPrinter(),
		session: sessionID,
	}
	return sh.loop(ctx)
}

type shell struct {
	chat    service.IChatService
	reindex service.IReindexService
	out     *printer
	session string
}

func (s *shell) loop(ctx context.Context) error {
	stats := s.reindex.Stats()
	infoColor.Printf("%d sections indexées depuis %d documents. /aide pour les commandes.\n", stats.Sections, stats.Sources)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		promptColor.Print("vous › ")

		var line string
		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		case l, ok := <-lines:
			if !ok {
				return nil
			}
			line = strings.TrimSpace(l)
		}
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := s.command(ctx, line); quit {
				return nil
			}
			continue
		}

		res, err := s.chat.SendChat(ctx, &dto.SendChatRequest{SessionId: s.session, Chat: line})
		if err != nil {
			warn("Erreur : %v", err)
			continue
		}
		s.session = res.SessionId
		s.out.reply(res)
	}
}

// command handles the shell's slash commands. It reports whether to quit.
func (s *shell) command(ctx context.Context, line string) bool {
	switch strings.Fields(line)[0] {
	case "/quit", "/exit", "/q":
		return true

	case "/reindex":
		stats, err := s.reindex.Reindex(ctx, events.ReasonShell)
		if err != nil {
			warn("Réindexation échouée, l'ancien index reste actif : %v", err)
			return false
		}
		infoColor.Printf("%d sections indexées depuis %d documents.\n", stats.Sections, stats.Sources)

	case "/reset":
		if s.session != "" {
			if err := s.chat.ResetSession(ctx, s.session); err != nil {
				warn("Erreur : %v", err)
				return false
			}
		}
		s.session = ""
		infoColor.Println("Nouvelle conversation.")

	case "/session":
		if s.session == "" {
			infoColor.Println("Aucune conversation en cours.")
			return false
		}
		sess, err := s.chat.GetSession(ctx, s.session)
		if err != nil {
			warn("Erreur : %v", err)
			return false
		}
		infoColor.Printf("session %s · état %s · %d messages\n", sess.SessionId, sess.Pending, len(sess.History))

	default:
		infoColor.Println("/reindex  relire les documents\n/reset    oublier la conversation\n/session  état de la conversation\n/quit     quitter")
	}
	return false
}
