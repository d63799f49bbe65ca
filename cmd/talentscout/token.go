package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omchoksi/talentscout/internal/config"
	"github.com/omchoksi/talentscout/internal/server"
)

var tokenSubject string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a recruiter access token",
	Long:  `Mint a JWT for the recruiter endpoints, signed with JWT_SECRET. Pass the token as "Authorization: Bearer <token>".`,
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "Recruiter identity to embed in the token (required)")
	_ = tokenCmd.MarkFlagRequired("subject")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(_ *cobra.Command, _ []string) error {
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return err
	}

	token, err := server.NewJWTService(jwtConfig).GenerateToken(tokenSubject)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	fmt.Println(token)
	return nil
}
