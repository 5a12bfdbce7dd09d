package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Pawank06/obzr-go/client"
)

func newListMemoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-memories",
		Short: "List legacy memories",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			memories, err := c.ListMemories(ctx)
			if err != nil {
				return err
			}
			dbg(memories)
			if len(memories) == 0 {
				fmt.Println("No memories")
				return nil
			}
			for _, m := range memories {
				fmt.Printf("%s  [%s]  %s\n", m.ID, m.Category, m.Content)
			}
			return nil
		},
	}
}

func newCreateMemoryCmd() *cobra.Command {
	var content, category, sessionID string
	var importance float64

	cmd := &cobra.Command{
		Use:   "create-memory",
		Short: "Create a legacy memory",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			mem, err := c.CreateMemory(ctx, client.CreateMemoryRequest{
				Content:    content,
				Category:   client.MemoryCategory(category),
				Importance: importance,
				SessionID:  sessionID,
			})
			if err != nil {
				log.Error().Err(err).Str("category", category).Msg("create memory failed")
				return err
			}

			dbg(mem)
			fmt.Printf("Memory created: %s\n", mem.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "Memory content (required)")
	cmd.Flags().StringVar(&category, "category", "FACT", "Category: CONVERSATION, FACT, PREFERENCE or SKILL")
	cmd.Flags().Float64Var(&importance, "importance", 0, "Advisory importance (0-1)")
	cmd.Flags().StringVar(&sessionID, "session-id", "", "Originating session ID (optional)")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newSearchMemoriesCmd() *cobra.Command {
	var query, category string
	var limit int

	cmd := &cobra.Command{
		Use:   "search-memories",
		Short: "Search legacy memories",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			memories, err := c.SearchMemories(ctx, query, limit, client.MemoryCategory(category))
			if err != nil {
				return err
			}
			dbg(memories)
			b, _ := json.MarshalIndent(memories, "", "  ")
			fmt.Println(string(b))
			return nil
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Search query (required)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum results")
	cmd.Flags().StringVar(&category, "category", "", "Restrict to one category (optional)")
	_ = cmd.MarkFlagRequired("query")
	return cmd
}

func newDeleteMemoryCmd() *cobra.Command {
	var memoryID string

	cmd := &cobra.Command{
		Use:   "delete-memory",
		Short: "Delete a legacy memory",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			if err := c.DeleteMemory(ctx, memoryID); err != nil {
				return err
			}
			fmt.Println("Memory deleted")
			return nil
		},
	}

	cmd.Flags().StringVar(&memoryID, "memory-id", "", "Memory ID (required)")
	_ = cmd.MarkFlagRequired("memory-id")
	return cmd
}

func newStoreMemoryCmd() *cobra.Command {
	var content, memoryType, sessionID, source string
	var bypassSTM, explicitSave bool

	cmd := &cobra.Command{
		Use:   "store-memory",
		Short: "Store a memory in the tiered memory system",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			start := time.Now()
			res, err := c.StoreMemory(ctx, client.StoreMemoryRequest{
				Content:      content,
				Type:         memoryType,
				SessionID:    sessionID,
				Source:       source,
				BypassSTM:    bypassSTM,
				ExplicitSave: explicitSave,
			})
			elapsed := time.Since(start)

			if err != nil {
				log.Error().Err(err).Dur("elapsed", elapsed).Msg("store memory failed")
				return err
			}

			log.Debug().
				Str("stm_id", res.STMID).
				Str("ltm_id", res.LTMID).
				Float64("importance", res.Importance).
				Dur("elapsed", elapsed).
				Msg("store memory completed")

			dbg(res)
			switch {
			case res.LTMID != "":
				fmt.Printf("Stored in long-term memory: %s (importance %.2f)\n", res.LTMID, res.Importance)
			case res.STMID != "":
				fmt.Printf("Stored in short-term memory: %s (importance %.2f)\n", res.STMID, res.Importance)
			default:
				fmt.Println("Stored")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "Memory content (required)")
	cmd.Flags().StringVar(&memoryType, "type", "", "Memory type: episodic, semantic or procedural")
	cmd.Flags().StringVar(&sessionID, "session-id", "", "Originating session ID (optional)")
	cmd.Flags().StringVar(&source, "source", "", "Source: user, agent or tool")
	cmd.Flags().BoolVar(&bypassSTM, "bypass-stm", false, "Write directly to long-term memory")
	cmd.Flags().BoolVar(&explicitSave, "explicit-save", false, "Mark as an explicit user save")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newQueryMemoriesCmd() *cobra.Command {
	var query, sessionID string
	var limit int
	var legacy bool

	cmd := &cobra.Command{
		Use:   "query-memories",
		Short: "Retrieve relevant memories for a query",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			req := client.QueryMemoriesRequest{
				Query:     query,
				Limit:     limit,
				SessionID: sessionID,
			}

			if legacy {
				res, err := c.QueryMemoriesWithLegacy(ctx, req)
				if err != nil {
					return err
				}
				dbg(res)
				b, _ := json.MarshalIndent(res, "", "  ")
				fmt.Println(string(b))
				return nil
			}

			res, err := c.QueryMemories(ctx, req)
			if err != nil {
				log.Error().Err(err).Str("query", query).Msg("query memories failed")
				return err
			}

			log.Debug().
				Int("returned", len(res.Memories)).
				Int("stm_items", res.SearchStats.STMItems).
				Int("ltm_items", res.SearchStats.LTMItems).
				Msg("query memories completed")

			dbg(res)
			b, _ := json.MarshalIndent(res, "", "  ")
			fmt.Println(string(b))
			return nil
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Retrieval query (required)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum results")
	cmd.Flags().StringVar(&sessionID, "session-id", "", "Restrict retrieval to one session")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "Also reissue the legacy search alongside the tiered query")
	_ = cmd.MarkFlagRequired("query")
	return cmd
}

func newPromoteMemoriesCmd() *cobra.Command {
	var maxPromotions int
	var minImportance float64

	cmd := &cobra.Command{
		Use:   "promote-memories",
		Short: "Promote short-term memories into long-term storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			var opts *client.PromoteOptions
			if maxPromotions > 0 || minImportance > 0 {
				opts = &client.PromoteOptions{MaxPromotions: maxPromotions, MinImportance: minImportance}
			}

			res, err := c.PromoteMemories(ctx, opts)
			if err != nil {
				log.Error().Err(err).Msg("promotion run failed")
				return err
			}

			dbg(res)
			fmt.Printf("Promoted %d, skipped %d, consolidated %d, errors %d\n",
				res.Promoted, res.Skipped, res.Consolidated, res.Errors)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxPromotions, "max-promotions", 0, "Cap on promotions this run (0 = server default)")
	cmd.Flags().Float64Var(&minImportance, "min-importance", 0, "Minimum importance to promote (0 = server default)")
	return cmd
}

func newConsolidateMemoriesCmd() *cobra.Command {
	var maxAge int
	var similarityThreshold float64

	cmd := &cobra.Command{
		Use:   "consolidate-memories",
		Short: "Cluster and merge similar long-term memories",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			var opts *client.ConsolidateOptions
			if maxAge > 0 || similarityThreshold > 0 {
				opts = &client.ConsolidateOptions{MaxAge: maxAge, SimilarityThreshold: similarityThreshold}
			}

			res, err := c.ConsolidateMemories(ctx, opts)
			if err != nil {
				log.Error().Err(err).Msg("consolidation run failed")
				return err
			}

			dbg(res)
			fmt.Printf("Found %d clusters, consolidated %d memories into %d, errors %d\n",
				res.ClustersFound, res.MemoriesConsolidated, res.ConsolidatedMemoriesCreated, res.Errors)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxAge, "max-age", 0, "Only consider memories older than this many days (0 = server default)")
	cmd.Flags().Float64Var(&similarityThreshold, "similarity-threshold", 0, "Cluster similarity cutoff (0 = server default)")
	return cmd
}

func newClearMemoriesCmd() *cobra.Command {
	var tier string

	cmd := &cobra.Command{
		Use:   "clear-memories",
		Short: "Clear one memory tier",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			cleared, err := c.ClearMemories(ctx, client.MemoryTier(tier))
			if err != nil {
				log.Error().Err(err).Str("tier", tier).Msg("clear memories failed")
				return err
			}
			fmt.Printf("Cleared %d items from %s\n", cleared, tier)
			return nil
		},
	}

	cmd.Flags().StringVar(&tier, "tier", "", "Tier to clear: stm, ltm or cache (required)")
	_ = cmd.MarkFlagRequired("tier")
	return cmd
}

func newMemoryStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "memory-stats",
		Short: "Show tier-by-tier memory statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			stats, err := c.MemoryStats(ctx)
			if err != nil {
				return err
			}
			dbg(stats)
			b, _ := json.MarshalIndent(stats, "", "  ")
			fmt.Println(string(b))
			return nil
		},
	}
}

func newMemoryHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "memory-health",
		Short: "Show memory subsystem health",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			health, err := c.MemoryHealth(ctx)
			if err != nil {
				return err
			}
			dbg(health)
			fmt.Printf("Status: %s (redis=%t memory=%t cache=%t telemetry=%t)\n",
				health.Status,
				health.Services.Redis,
				health.Services.Memory,
				health.Services.Cache,
				health.Services.Telemetry)
			return nil
		},
	}
}
