package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/pledgevault/crowdfund-backend/internal/bootstrap"
	"github.com/pledgevault/crowdfund-backend/internal/escrow/repository"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: auditlog <project-id>")
	}

	projectID, err := strconv.ParseUint(os.Args[1], 10, 64)
	if err != nil {
		log.Fatalf("invalid project id: %s", os.Args[1])
	}

	_ = godotenv.Load()

	ctx := context.Background()
	db, err := bootstrap.OpenSQLDB(ctx, bootstrap.DBOptions{DSN: os.Getenv("DB_DSN")})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	events, err := repository.NewAuditRepository(db).ListByProject(ctx, projectID)
	if err != nil {
		log.Fatalf("list events: %v", err)
	}

	for _, ev := range events {
		fmt.Printf("%s  %-28s account=%-20s amount=%-12d success=%t\n",
			ev.CreatedAt.Format("2006-01-02 15:04:05"), ev.EventType, ev.Account, ev.Amount, ev.Success)
	}
	fmt.Printf("%d events\n", len(events))
}
