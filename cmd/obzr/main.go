package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Pawank06/obzr-go/client"
	"github.com/Pawank06/obzr-go/internal/config"
	"github.com/Pawank06/obzr-go/internal/tokenstore"
)

var serviceURL string
var tokenPath string
var debug bool

const requestTimeout = 30 * time.Second

func dbg(v interface{}) {
	if !debug {
		return
	}
	log.Debug().Interface("data", v).Msg("debug output")
}

func main() {
	_ = godotenv.Load()
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "obzr",
		Short: "Obzr CLI for chat sessions and tiered memory",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.InitLogger()

			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				os.Setenv("OBZR_DEBUG", "true")
				log.Debug().Msg("debug logging enabled")
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	rootCmd.PersistentFlags().StringVar(&serviceURL, "service-url", cfg.ServiceURL, "Base URL of the Obzr backend")
	rootCmd.PersistentFlags().StringVar(&tokenPath, "token-path", cfg.TokenPath, "Path of the persisted credential file")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output")

	// Sub-commands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newListSessionsCmd())
	rootCmd.AddCommand(newCreateSessionCmd())
	rootCmd.AddCommand(newGetSessionCmd())
	rootCmd.AddCommand(newDeleteSessionCmd())
	rootCmd.AddCommand(newListMessagesCmd())
	rootCmd.AddCommand(newChatCmd())
	rootCmd.AddCommand(newGenerateTitleCmd())
	rootCmd.AddCommand(newSummarizeCmd())
	rootCmd.AddCommand(newListModelsCmd())
	rootCmd.AddCommand(newListMemoriesCmd())
	rootCmd.AddCommand(newCreateMemoryCmd())
	rootCmd.AddCommand(newSearchMemoriesCmd())
	rootCmd.AddCommand(newDeleteMemoryCmd())
	rootCmd.AddCommand(newStoreMemoryCmd())
	rootCmd.AddCommand(newQueryMemoriesCmd())
	rootCmd.AddCommand(newPromoteMemoriesCmd())
	rootCmd.AddCommand(newConsolidateMemoriesCmd())
	rootCmd.AddCommand(newClearMemoriesCmd())
	rootCmd.AddCommand(newMemoryStatsCmd())
	rootCmd.AddCommand(newMemoryHealthCmd())

	return rootCmd
}

// newClient builds a client backed by the on-disk credential file so that a
// login from one invocation carries over to the next.
func newClient() (*client.Client, error) {
	store, err := tokenstore.NewFileStore(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}
	c := client.New(serviceURL,
		client.WithTokenStore(store),
		client.WithAuthRejectedHook(func() {
			fmt.Fprintln(os.Stderr, "Credential rejected by the server; please log in again.")
		}),
	)
	return c, nil
}

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and persist the credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			start := time.Now()
			res, err := c.Login(ctx, email, password)
			elapsed := time.Since(start)

			if err != nil {
				log.Error().Err(err).Str("email", email).Dur("elapsed", elapsed).Msg("login failed")
				return err
			}

			log.Debug().
				Str("user_id", res.User.ID).
				Str("email", res.User.Email).
				Dur("elapsed", elapsed).
				Msg("login completed")

			dbg(res.User)
			fmt.Printf("Logged in as %s (%s)\n", res.User.Name, res.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newRegisterCmd() *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and persist the credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			res, err := c.Register(ctx, email, password, name)
			if err != nil {
				log.Error().Err(err).Str("email", email).Msg("register failed")
				return err
			}

			dbg(res.User)
			fmt.Printf("Registered %s (%s)\n", res.User.Name, res.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (required)")
	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the persisted credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Report the current authentication state",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := tokenstore.NewFileStore(tokenPath)
			if err != nil {
				return err
			}
			state := client.NewAuthState(store)
			if !state.IsAuthenticated() {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}
			u, _ := state.CurrentUser()
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (credential at %s)\n", u.Name, tokenPath)
			return nil
		},
	}
}

func newHealthCmd() *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check backend liveness",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			if wait {
				if err := c.AwaitHealthy(ctx); err != nil {
					return err
				}
			}
			st, err := c.Health(ctx)
			if err != nil {
				return err
			}
			dbg(st)
			fmt.Printf("Status: %s\n", st.Status)
			return nil
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "Poll until the backend reports healthy")
	return cmd
}

func newListSessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-sessions",
		Short: "List conversation sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			sessions, err := c.ListSessions(ctx)
			if err != nil {
				log.Error().Err(err).Msg("list sessions failed")
				return err
			}

			dbg(sessions)
			if len(sessions) == 0 {
				fmt.Println("No sessions")
				return nil
			}
			for _, s := range sessions {
				fmt.Printf("%s  %s  (%d messages)\n", s.ID, s.Title, s.MessageCount)
			}
			return nil
		},
	}
}

func newCreateSessionCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "create-session",
		Short: "Create a new conversation session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			sess, err := c.CreateSession(ctx, title)
			if err != nil {
				log.Error().Err(err).Str("title", title).Msg("create session failed")
				return err
			}

			dbg(sess)
			fmt.Printf("Session created: %s - %s\n", sess.ID, sess.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "New Conversation", "Session title")
	return cmd
}

func newGetSessionCmd() *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "get-session",
		Short: "Show one session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			sess, err := c.GetSession(ctx, sessionID)
			if err != nil {
				return err
			}
			b, _ := json.MarshalIndent(sess, "", "  ")
			fmt.Println(string(b))
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session-id", "", "Session ID (required)")
	_ = cmd.MarkFlagRequired("session-id")
	return cmd
}

func newDeleteSessionCmd() *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "delete-session",
		Short: "Delete a session and its messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			if err := c.DeleteSession(ctx, sessionID); err != nil {
				log.Error().Err(err).Str("session_id", sessionID).Msg("delete session failed")
				return err
			}
			fmt.Println("Session deleted")
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session-id", "", "Session ID (required)")
	_ = cmd.MarkFlagRequired("session-id")
	return cmd
}

func newListMessagesCmd() *cobra.Command {
	var sessionID string
	var page, limit int

	cmd := &cobra.Command{
		Use:   "list-messages",
		Short: "List one page of a session's messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			start := time.Now()
			pg, err := c.ListMessages(ctx, sessionID, page, limit)
			elapsed := time.Since(start)

			if err != nil {
				log.Error().Err(err).Str("session_id", sessionID).Dur("elapsed", elapsed).Msg("list messages failed")
				return err
			}

			log.Debug().
				Str("session_id", sessionID).
				Int("returned", len(pg.Messages)).
				Int("total", pg.Total).
				Bool("has_more", pg.HasMore).
				Dur("elapsed", elapsed).
				Msg("list messages completed")

			// Output full JSON so automated callers can parse the page without
			// needing the Go client types.
			b, _ := json.MarshalIndent(pg, "", "  ")
			fmt.Println(string(b))
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session-id", "", "Session ID (required)")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&limit, "limit", 50, "Page size")
	_ = cmd.MarkFlagRequired("session-id")
	return cmd
}

func newChatCmd() *cobra.Command {
	var sessionID, message, model string
	var includeMemory, stream bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Send a chat message and print the assistant's reply",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			var opts *client.ChatOptions
			if model != "" || includeMemory {
				opts = &client.ChatOptions{Model: model, IncludeMemory: includeMemory}
			}

			if stream {
				body, err := c.StreamMessage(ctx, sessionID, message, opts)
				if err != nil {
					return err
				}
				defer body.Close()
				buf := make([]byte, 4096)
				for {
					n, rerr := body.Read(buf)
					if n > 0 {
						fmt.Print(string(buf[:n]))
					}
					if rerr != nil {
						break
					}
				}
				fmt.Println()
				return nil
			}

			start := time.Now()
			res, err := c.SendMessage(ctx, sessionID, message, opts)
			elapsed := time.Since(start)

			if err != nil {
				log.Error().Err(err).Str("session_id", sessionID).Dur("elapsed", elapsed).Msg("chat failed")
				return err
			}

			log.Debug().
				Str("session_id", res.SessionID).
				Str("user_message_id", res.UserMessage.ID).
				Str("assistant_message_id", res.AssistantMessage.ID).
				Dur("elapsed", elapsed).
				Msg("chat completed")

			dbg(res)
			fmt.Println(res.Response)
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session-id", "", "Session ID (required)")
	cmd.Flags().StringVar(&message, "message", "", "Message text (required)")
	cmd.Flags().StringVar(&model, "model", "", "Model override (optional)")
	cmd.Flags().BoolVar(&includeMemory, "include-memory", false, "Include personalized memory context")
	cmd.Flags().BoolVar(&stream, "stream", false, "Stream the reply as it is generated")
	_ = cmd.MarkFlagRequired("session-id")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}

func newGenerateTitleCmd() *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "generate-title",
		Short: "Generate and persist a title for a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			title, err := c.GenerateTitle(ctx, sessionID)
			if err != nil {
				return err
			}
			fmt.Println(title)
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session-id", "", "Session ID (required)")
	_ = cmd.MarkFlagRequired("session-id")
	return cmd
}

func newSummarizeCmd() *cobra.Command {
	var sessionID string
	var maxMessages int

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize a session's conversation",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			summary, err := c.SummarizeConversation(ctx, sessionID, maxMessages)
			if err != nil {
				return err
			}
			fmt.Println(summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session-id", "", "Session ID (required)")
	cmd.Flags().IntVar(&maxMessages, "max-messages", 0, "Cap on messages considered (0 = server default)")
	_ = cmd.MarkFlagRequired("session-id")
	return cmd
}

func newListModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-models",
		Short: "List available assistant models",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			list, err := c.ListModels(ctx)
			if err != nil {
				return err
			}
			dbg(list)
			for _, m := range list.Models {
				marker := " "
				if m.ID == list.Default {
					marker = "*"
				}
				fmt.Printf("%s %s  %s\n", marker, m.ID, m.Name)
			}
			return nil
		},
	}
}
