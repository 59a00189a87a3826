package main

import (
	"context"
	"fmt"
	"laporantdx/backend/internal/artifact"
	"laporantdx/backend/internal/config"
	"laporantdx/backend/internal/document"
	"laporantdx/backend/internal/models"
	"laporantdx/backend/internal/storage"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	databaseURL string
	storageSvc  *storage.Service
)

var rootCmd = &cobra.Command{
	Use:           "admin",
	Short:         "Maintenance commands for the laporan database",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if databaseURL == "" {
			return fmt.Errorf("DATABASE_URL is not set (use --database-url)")
		}
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return fmt.Errorf("failed to connect database: %w", err)
		}
		storageSvc = storage.NewStorageService(db, nil) // No redis needed for admin CLI
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := storageSvc.Migrate(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied.")
		return nil
	},
}

var (
	adminPassword    string
	adminDisplayName string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin <username>",
	Short: "Create an operator account for the report listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password := adminPassword
		if password == "" {
			password = os.Getenv("ADMIN_PASSWORD")
		}
		admin := &models.Admin{Username: args[0], DisplayName: adminDisplayName}
		if err := admin.SetPassword(password); err != nil {
			return err
		}
		if err := storageSvc.CreateAdmin(cmd.Context(), admin); err != nil {
			return fmt.Errorf("error creating admin: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Admin %s has been created (id %d).\n", admin.Username, admin.ID)
		return nil
	},
}

var officerCategories = map[string]bool{"td": true, "pdu": true, "transmisi": true}

var addOfficerCmd = &cobra.Command{
	Use:   "add-officer <jenis> <name>",
	Short: "Add an officer to the directory (jenis: td, pdu, transmisi)",
	Long: fmt.Sprintf(`Add an officer to the directory (jenis: td, pdu, transmisi).

A running server caches the directory per jenis, so the new officer shows up
in /api/petugas within %s.`, config.OfficerCacheTTL),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		category := strings.ToLower(args[0])
		if !officerCategories[category] {
			return fmt.Errorf("unknown jenis %q", args[0])
		}
		officer := &models.Officer{Category: category, Name: strings.TrimSpace(args[1])}
		if officer.Name == "" {
			return fmt.Errorf("officer name must not be empty")
		}
		if err := storageSvc.CreateOfficer(cmd.Context(), officer); err != nil {
			return fmt.Errorf("error adding officer: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Officer %s (%s) has been added; running servers list it within %s.\n",
			officer.Name, officer.Category, config.OfficerCacheTTL)
		return nil
	},
}

var (
	renderOut          string
	renderArtifactDir  string
	renderUncompressed bool
)

var renderCmd = &cobra.Command{
	Use:   "render <report_id>",
	Short: "Render a stored report's PDF",
	Long: `Render a stored report's PDF. With --out the document is written to that
file; otherwise it replaces the artifact in --artifact-dir.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil || id == 0 {
			return fmt.Errorf("invalid report id %q", args[0])
		}
		report, err := storageSvc.GetReport(cmd.Context(), uint(id))
		if err != nil {
			return err
		}
		renderer := document.NewRenderer()
		renderer.SetCompression(!renderUncompressed)
		data, err := renderer.Render(report)
		if err != nil {
			return fmt.Errorf("render report %d: %w", id, err)
		}

		if renderOut != "" {
			if err := os.WriteFile(renderOut, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes).\n", renderOut, len(data))
			return nil
		}
		store, err := artifact.NewStore(renderArtifactDir)
		if err != nil {
			return err
		}
		name, err := store.Save(report.ID, data)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved artifact %s.\n", name)
		return nil
	},
}

var listFilter storage.ListFilter

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored reports, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reports, err := storageSvc.ListReports(cmd.Context(), listFilter)
		if err != nil {
			return err
		}
		loc := config.DeskLocation()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTANGGAL\tSUBMITTED\tTD\tOUTCOME\tKENDALA")
		for _, r := range reports {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\n",
				r.ID,
				time.Time(r.ReportDate).Format("02-01-2006"),
				r.SubmittedAt.In(loc).Format("02-01-2006 15:04"),
				r.OfficerTD,
				r.Outcome,
				len(r.Incidents),
			)
		}
		return w.Flush()
	},
}

func init() {
	_ = config.LoadDotEnv()

	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")

	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "password (default: $ADMIN_PASSWORD)")
	createAdminCmd.Flags().StringVar(&adminDisplayName, "display-name", "", "name shown in the dashboard")

	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "write the PDF to this file")
	renderCmd.Flags().StringVar(&renderArtifactDir, "artifact-dir", "./artifacts", "artifact directory")
	renderCmd.Flags().BoolVar(&renderUncompressed, "uncompressed", false, "leave page streams uncompressed")

	listCmd.Flags().StringVar(&listFilter.Waktu, "waktu", "", "time-window token (pagi, sore)")
	listCmd.Flags().IntVar(&listFilter.Limit, "limit", config.ListDefaultLimit, "maximum rows")
	listCmd.Flags().IntVar(&listFilter.Offset, "offset", 0, "rows to skip")

	rootCmd.AddCommand(migrateCmd, createAdminCmd, addOfficerCmd, renderCmd, listCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
