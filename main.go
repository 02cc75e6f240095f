package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	log "github.com/sirupsen/logrus"

	"auctioneer/cmd"
	"auctioneer/database"
)

const usage = `usage: auctioneer [command]

commands:
  (none)                                 run the HTTP server, Discord bot and notification worker
  migrate up|down [steps]|status         manage the database schema
  sweep                                  send pending winner notifications once
  create-session <discord-id> <username> issue a session token for a Discord user`

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		log.WithError(err).Fatal("auctioneer failed")
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return cmd.Run(ctx)
	}

	switch args[0] {
	case "migrate":
		return handleMigrationCommand(args[1:])
	case "sweep":
		notified, err := cmd.Sweep(ctx)
		if err != nil {
			return err
		}
		log.WithField("notified", notified).Info("Winner notification sweep completed")
		return nil
	case "create-session":
		return handleCreateSession(ctx, args[1:])
	case "help", "-h", "--help":
		fmt.Println(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

func handleMigrationCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: auctioneer migrate [up|down|status] [args...]")
	}

	switch args[0] {
	case "up":
		return database.MigrateUp()
	case "down":
		steps := "1"
		if len(args) > 1 {
			steps = args[1]
		}
		return database.MigrateDown(steps)
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", args[0])
	}
}

func handleCreateSession(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: auctioneer create-session <discord-id> <username>")
	}
	discordID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid discord id %q: %w", args[0], err)
	}

	session, err := cmd.CreateSession(ctx, discordID, args[1])
	if err != nil {
		return err
	}

	// the token goes to stdout so it can be piped
	fmt.Println(session.Token)
	log.WithFields(log.Fields{
		"user_id":    session.UserID,
		"expires_at": session.ExpiresAt,
	}).Info("Session created")
	return nil
}
