package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"stargrid/models"

	"github.com/chzyer/readline"
)

// CLI is the interactive admin console speaking to a running server over HTTP
type CLI struct {
	rl      *readline.Instance
	running bool
	client  *Client
}

// New creates a CLI instance connected to serverURL
func New(serverURL string) (*CLI, error) {
	client := NewClient(serverURL)

	// Test connectivity
	if err := client.HealthCheck(); err != nil {
		return nil, fmt.Errorf("cannot connect to server: %v", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %v", err)
	}

	return &CLI{
		rl:      rl,
		running: true,
		client:  client,
	}, nil
}

// Start runs the CLI loop
func (c *CLI) Start() {
	defer c.rl.Close()
	c.printWelcome()

	for c.running {
		line, err := c.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				fmt.Println("\nUse 'exit' or 'quit' to leave.")
				continue
			}
			break
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		c.handleCommand(input)
	}
}

// printWelcome prints initial banner
func (c *CLI) printWelcome() {
	PrintBanner("Stargrid - Admin CLI")
	fmt.Printf("\nConnected to: %s\n", c.client.baseURL)
	fmt.Println("Type 'help' for available commands")
}

// handleCommand routes user commands
func (c *CLI) handleCommand(input string) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "h", "?":
		c.showHelp()
	case "login":
		c.handleLogin(args)
	case "logout":
		c.handleLogout()
	case "content":
		c.handleContentCommand(args)
	case "settings":
		c.handleSettingsCommand(args)
	case "health":
		c.handleHealth()
	case "clear":
		c.clearScreen()
	case "exit", "quit", "q":
		fmt.Println("\nGoodbye!")
		c.running = false
	default:
		fmt.Printf("Unknown command: %s. Type 'help' for available commands.\n", cmd)
	}
}

// showHelp prints available commands
func (c *CLI) showHelp() {
	fmt.Println()
	PrintBanner("Available Commands")
	fmt.Println()

	commands := [][]string{
		{"help, h, ?", "Show this help message"},
		{"", ""},
		{"AUTH:", ""},
		{"login [username]", "Log in (prompts for the password)"},
		{"logout", "Delete the current session"},
		{"", ""},
		{"CONTENT:", ""},
		{"content list", "List all days with content"},
		{"content show <day>", "Show one day's content"},
		{"content set <day>", "Create or replace a day (interactive)"},
		{"content delete <day>", "Delete a day's content"},
		{"", ""},
		{"SETTINGS:", ""},
		{"settings show", "Show the visual settings"},
		{"settings set <field> <value>", "Update one settings field"},
		{"", ""},
		{"SYSTEM:", ""},
		{"health", "Check server health"},
		{"clear", "Clear screen"},
		{"exit, quit, q", "Exit the program"},
	}

	for _, cmd := range commands {
		if len(cmd) == 2 && cmd[0] != "" {
			fmt.Printf("  %-30s %s\n", cmd[0], cmd[1])
		} else {
			fmt.Println()
		}
	}
}

// handleLogin prompts for a password and logs in
func (c *CLI) handleLogin(args []string) {
	username := ""
	if len(args) > 0 {
		username = args[0]
	}

	password, err := c.rl.ReadPassword("Password: ")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	if err := c.client.Login(username, string(password)); err != nil {
		fmt.Printf("Login failed: %v\n", err)
		return
	}
	fmt.Println("Logged in.")
}

func (c *CLI) handleLogout() {
	if !c.client.LoggedIn() {
		fmt.Println("Not logged in.")
		return
	}
	if err := c.client.Logout(); err != nil {
		fmt.Printf("Logout failed: %v\n", err)
		return
	}
	fmt.Println("Logged out.")
}

// handleContentCommand handles content-related commands
func (c *CLI) handleContentCommand(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: content <list|show|set|delete> [day]")
		return
	}

	switch args[0] {
	case "list", "ls":
		c.listContent()
	case "show", "get":
		if len(args) < 2 {
			fmt.Println("Usage: content show <day>")
			return
		}
		c.showContent(args[1])
	case "set", "edit":
		if len(args) < 2 {
			fmt.Println("Usage: content set <day>")
			return
		}
		c.setContent(args[1])
	case "delete", "del", "rm":
		if len(args) < 2 {
			fmt.Println("Usage: content delete <day>")
			return
		}
		c.deleteContent(args[1])
	default:
		fmt.Printf("Unknown content command: %s\n", args[0])
	}
}

// listContent lists all days with content
func (c *CLI) listContent() {
	records, err := c.client.ListContent()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	if len(records) == 0 {
		fmt.Println("No content yet.")
		return
	}

	fmt.Printf("\n%-5s %-10s %-30s %s\n", "DAY", "TYPE", "TITLE", "UPDATED")
	for _, r := range records {
		fmt.Printf("%-5d %-10s %-30s %s\n", r.Day, r.Type, truncate(r.Title, 30), r.UpdatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Println()
}

// showContent prints one day's record with its payload
func (c *CLI) showContent(dayArg string) {
	day, err := strconv.Atoi(dayArg)
	if err != nil {
		fmt.Println("Day must be a number.")
		return
	}

	record, err := c.client.GetContent(day)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("\nDay:     %d\n", record.Day)
	fmt.Printf("Title:   %s\n", record.Title)
	fmt.Printf("Type:    %s\n", record.Type)
	fmt.Printf("Updated: %s\n", record.UpdatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Content: %s\n\n", prettyJSON(record.Content))
}

// setContent interactively builds a content payload and upserts it
func (c *CLI) setContent(dayArg string) {
	day, err := strconv.Atoi(dayArg)
	if err != nil {
		fmt.Println("Day must be a number.")
		return
	}

	contentType := c.readInput(fmt.Sprintf("Type (%s)", strings.Join(models.ContentTypes, "/")), models.TypeText)
	title := c.readInput("Title (empty for default)", "")

	var payload map[string]string
	switch contentType {
	case models.TypeText:
		payload = map[string]string{"text": c.readInput("Text", "")}
	case models.TypeImage:
		payload = map[string]string{"imageUrl": c.readInput("Image URL", "")}
		if caption := c.readInput("Caption (optional)", ""); caption != "" {
			payload["imageCaption"] = caption
		}
	case models.TypeVideo:
		payload = map[string]string{"videoUrl": c.readInput("Video URL", "")}
	case models.TypeAudio:
		payload = map[string]string{"audioUrl": c.readInput("Audio URL", "")}
	case models.TypeCitation:
		payload = map[string]string{"citationText": c.readInput("Citation text", "")}
		if source := c.readInput("Source (optional)", ""); source != "" {
			payload["citationSource"] = source
		}
	case models.TypeLink:
		payload = map[string]string{"linkUrl": c.readInput("Link URL", "")}
		if desc := c.readInput("Description (optional)", ""); desc != "" {
			payload["linkDescription"] = desc
		}
	default:
		fmt.Printf("Unknown content type: %s\n", contentType)
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	record, err := c.client.UpsertContent(day, models.ContentUpdate{
		Title:   title,
		Type:    contentType,
		Content: raw,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Saved day %d (%s).\n", record.Day, record.Type)
}

func (c *CLI) deleteContent(dayArg string) {
	day, err := strconv.Atoi(dayArg)
	if err != nil {
		fmt.Println("Day must be a number.")
		return
	}

	if err := c.client.DeleteContent(day); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Deleted day %d.\n", day)
}

// handleSettingsCommand handles settings commands
func (c *CLI) handleSettingsCommand(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: settings <show|set> [field value]")
		return
	}

	switch args[0] {
	case "show", "get":
		c.showSettings()
	case "set":
		if len(args) < 3 {
			fmt.Println("Usage: settings set <field> <value>")
			fmt.Println("Fields: appTitle appDescription titleColor starColor starBorderColor backgroundImage totalDays")
			return
		}
		c.setSettingsField(args[1], strings.Join(args[2:], " "))
	default:
		fmt.Printf("Unknown settings command: %s\n", args[0])
	}
}

func (c *CLI) showSettings() {
	settings, err := c.client.GetSettings()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("\nApp title:         %s\n", settings.AppTitle)
	fmt.Printf("App description:   %s\n", settings.AppDescription)
	fmt.Printf("Title color:       %s\n", settings.TitleColor)
	fmt.Printf("Star color:        %s\n", settings.StarColor)
	fmt.Printf("Star border color: %s\n", settings.StarBorderColor)
	fmt.Printf("Background image:  %s\n", settings.BackgroundImage)
	fmt.Printf("Total days:        %d\n", settings.TotalDays)
	fmt.Printf("Updated:           %s\n\n", settings.UpdatedAt.Format("2006-01-02 15:04:05"))
}

func (c *CLI) setSettingsField(field, value string) {
	var req models.SettingsUpdate

	switch field {
	case "appTitle":
		req.AppTitle = &value
	case "appDescription":
		req.AppDescription = &value
	case "titleColor":
		req.TitleColor = &value
	case "starColor":
		req.StarColor = &value
	case "starBorderColor":
		req.StarBorderColor = &value
	case "backgroundImage":
		req.BackgroundImage = &value
	case "totalDays":
		n, err := strconv.Atoi(value)
		if err != nil {
			fmt.Println("totalDays must be a number.")
			return
		}
		req.TotalDays = &n
	default:
		fmt.Printf("Unknown settings field: %s\n", field)
		return
	}

	if _, err := c.client.UpdateSettings(req); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println("Settings updated.")
}

func (c *CLI) handleHealth() {
	if err := c.client.HealthCheck(); err != nil {
		fmt.Printf("Server unhealthy: %v\n", err)
		return
	}
	fmt.Println("Server is healthy.")
}

// readInput reads a line with a prompt and default value
func (c *CLI) readInput(prompt, defaultValue string) string {
	if defaultValue != "" {
		c.rl.SetPrompt(fmt.Sprintf("%s [%s]: ", prompt, defaultValue))
	} else {
		c.rl.SetPrompt(prompt + ": ")
	}
	defer c.rl.SetPrompt("> ")

	line, err := c.rl.Readline()
	if err != nil {
		return defaultValue
	}

	input := strings.TrimSpace(line)
	if input == "" {
		return defaultValue
	}
	return input
}

func (c *CLI) clearScreen() {
	fmt.Print("\033[H\033[2J")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func prettyJSON(raw json.RawMessage) string {
	var buf map[string]any
	if err := json.Unmarshal(raw, &buf); err != nil {
		return string(raw)
	}
	out, err := json.MarshalIndent(buf, "", "  ")
	if err != nil {
		return string(raw)
	}
	return string(out)
}
