package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/campusgrid/timetable-backend/internal/config"
	"github.com/campusgrid/timetable-backend/internal/logger"
	"github.com/campusgrid/timetable-backend/internal/service"
)

// issue-token signs a development identity token with IDENTITY_HMAC_SECRET.
func main() {
	var (
		userID     string
		department string
		ttl        time.Duration
	)
	flag.StringVar(&userID, "user", "", "Subject (user id) of the token")
	flag.StringVar(&department, "department", "", "Department code; empty issues a token without a department")
	flag.DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	// Tokens are always HS256 here, even when the server verifies RS256.
	cfg.IdentityPublicKey = ""
	identityService, err := service.NewIdentityService(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure identity service")
	}

	if userID == "" {
		fmt.Fprint(os.Stderr, "Enter User ID: ")
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		userID = strings.TrimSpace(line)
	}
	if userID == "" {
		fmt.Fprintln(os.Stderr, "Error: -user is required")
		flag.Usage()
		os.Exit(2)
	}

	token, err := identityService.Issue(strings.TrimSpace(userID), strings.TrimSpace(department), ttl)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to issue token")
	}
	fmt.Println(token)
}
