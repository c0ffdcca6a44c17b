package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/wanderlog/internal/config"
	"github.com/wanderlog/internal/db"
	"github.com/wanderlog/internal/service"
	"gorm.io/gorm"
)

// RootCmd is the base command for the wanderctl application.
var RootCmd = &cobra.Command{
	Use:   "wanderctl",
	Short: "Operations tooling for the wanderlog platform",
	Long: `wanderctl inspects and exports per-tenant visit analytics
straight from the platform database, without going through the HTTP API.`,
}

// Execute is the main entry point for the Cobra application.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

// openDatabase 按与服务器相同的配置打开共享数据库
func openDatabase() *gorm.DB {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded configuration from .env")
	}

	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	return db.DB
}

// resolveTenant maps the --tenant flag to a tenant uid, defaulting to the
// earliest registered user when the flag is empty.
func resolveTenant(gdb *gorm.DB, tenant string) string {
	users := service.NewUserService(gdb)

	if tenant == "" {
		uid, err := users.FirstUserUID()
		if err != nil {
			log.Fatalf("no tenants registered: %v", err)
		}
		return uid
	}

	if _, err := users.GetByUID(tenant); err != nil {
		log.Fatalf("unknown tenant %q: %v", tenant, err)
	}
	return tenant
}
