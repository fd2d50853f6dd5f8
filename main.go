package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/raimis707/bookshelf/config"
	"github.com/raimis707/bookshelf/database"
	"github.com/raimis707/bookshelf/logger"
	"github.com/raimis707/bookshelf/web"
	"github.com/raimis707/bookshelf/web/cache"
	"github.com/raimis707/bookshelf/web/service"

	"github.com/spf13/cobra"
)

func initDB() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return err
	}
	return database.InitDB(dbConfig)
}

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	level, err := logger.ParseLevel(config.GetLogLevel())
	if err != nil {
		log.Fatal(err)
	}
	logger.InitLogger(level)
	defer logger.CloseLogger()

	if err := initDB(); err != nil {
		log.Fatal(err)
	}
	defer database.CloseDB()

	if err := cache.InitRedis(context.Background(), config.GetRedisAddr()); err != nil {
		log.Fatal(err)
	}
	defer cache.Close()

	server := web.NewServer()
	err = server.Start()
	if err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, os.Interrupt)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			logger.Info("Received SIGHUP signal. Restarting web server...")
			err := server.Stop()
			if err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			err = server.Start()
			if err != nil {
				log.Println(err)
				return
			}
		default:
			logger.Info("Shutting down web server...")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			return
		}
	}
}

func resetSetting() {
	err := initDB()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer database.CloseDB()

	settingService := service.SettingService{}
	err = settingService.ResetSettings()
	if err != nil {
		fmt.Println("reset setting failed:", err)
	} else {
		fmt.Println("reset setting success")
	}
}

func showSetting() {
	err := initDB()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer database.CloseDB()

	settingService := service.SettingService{}
	allSetting, err := settingService.GetAllSetting()
	if err != nil {
		fmt.Println("get current settings failed, error info:", err)
		return
	}
	fmt.Println("current settings as follows:")
	fmt.Println("listen:", allSetting.WebListen)
	fmt.Println("port:", allSetting.WebPort)
	fmt.Println("webBasePath:", allSetting.WebBasePath)
	fmt.Println("sessionMaxAge:", allSetting.SessionMaxAge)
	fmt.Println("openBookCatalog:", allSetting.OpenBookCatalog)
}

func updateSetting(cmd *cobra.Command) {
	err := initDB()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer database.CloseDB()

	settingService := service.SettingService{}
	allSetting, err := settingService.GetAllSetting()
	if err != nil {
		fmt.Println(err)
		return
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		allSetting.WebPort, _ = flags.GetInt("port")
	}
	if flags.Changed("listen") {
		allSetting.WebListen, _ = flags.GetString("listen")
	}
	if flags.Changed("webBasePath") {
		allSetting.WebBasePath, _ = flags.GetString("webBasePath")
	}
	if flags.Changed("sessionMaxAge") {
		allSetting.SessionMaxAge, _ = flags.GetInt("sessionMaxAge")
	}
	if flags.Changed("openBookCatalog") {
		allSetting.OpenBookCatalog, _ = flags.GetBool("openBookCatalog")
	}

	if err := settingService.UpdateAllSetting(allSetting); err != nil {
		fmt.Println("update settings failed:", err)
		return
	}
	fmt.Println("update settings success")
}

func makeAdmin(email, password, firstName, lastName string) {
	err := initDB()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer database.CloseDB()

	userService := service.UserService{}
	user, err := userService.EnsureAdmin(email, password, firstName, lastName)
	if err != nil {
		fmt.Println("set administrator failed:", err)
		return
	}
	fmt.Printf("%s is now an administrator\n", user.EmailAddress)
}

func resetPassword(email, password string) {
	err := initDB()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer database.CloseDB()

	userService := service.UserService{}
	user, err := userService.GetUserByEmail(email)
	if err != nil {
		fmt.Println("find user failed:", err)
		return
	}
	if err := userService.UpdatePassword(user.Id, password); err != nil {
		fmt.Println("set password failed:", err)
		return
	}
	fmt.Println("set password success")
}

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Println("load .env failed:", err)
		os.Exit(1)
	}

	var rootCmd = &cobra.Command{
		Use:   "bookshelf",
		Short: "Library lending and review server",
	}

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var settingCmd = &cobra.Command{
		Use:   "setting",
		Short: "Set settings",
	}

	var resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Reset all settings",
		Run: func(cmd *cobra.Command, args []string) {
			resetSetting()
		},
	}

	var showCmd = &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Run: func(cmd *cobra.Command, args []string) {
			showSetting()
		},
	}

	var updateCmd = &cobra.Command{
		Use:   "update",
		Short: "Update settings",
		Run: func(cmd *cobra.Command, args []string) {
			updateSetting(cmd)
		},
	}

	updateCmd.Flags().Int("port", 0, "set web port")
	updateCmd.Flags().String("listen", "", "set web listen address")
	updateCmd.Flags().String("webBasePath", "", "set web base path")
	updateCmd.Flags().Int("sessionMaxAge", 0, "set session lifetime in minutes")
	updateCmd.Flags().Bool("openBookCatalog", false, "let everyone add books")

	settingCmd.AddCommand(resetCmd, showCmd, updateCmd)

	var userCmd = &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	var adminCmd = &cobra.Command{
		Use:   "admin",
		Short: "Make an account an administrator, creating it if needed",
		Run: func(cmd *cobra.Command, args []string) {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			first, _ := cmd.Flags().GetString("first")
			last, _ := cmd.Flags().GetString("last")
			makeAdmin(email, password, first, last)
		},
	}

	adminCmd.Flags().String("email", "", "account email address")
	adminCmd.Flags().String("password", "", "password for a new account")
	adminCmd.Flags().String("first", "", "first name for a new account")
	adminCmd.Flags().String("last", "", "last name for a new account")
	_ = adminCmd.MarkFlagRequired("email")

	var passwordCmd = &cobra.Command{
		Use:   "password",
		Short: "Set the password of an account",
		Run: func(cmd *cobra.Command, args []string) {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			resetPassword(email, password)
		},
	}

	passwordCmd.Flags().String("email", "", "account email address")
	passwordCmd.Flags().String("password", "", "new password")
	_ = passwordCmd.MarkFlagRequired("email")
	_ = passwordCmd.MarkFlagRequired("password")

	userCmd.AddCommand(adminCmd, passwordCmd)

	rootCmd.AddCommand(runCmd, settingCmd, userCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
