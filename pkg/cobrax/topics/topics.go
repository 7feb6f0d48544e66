package topics

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// Topic is a single help document.
type Topic struct {
	Name    string // lookup key, the filename without extension
	Format  string // "markdown" or "text"
	Content string
}

// Manager holds the loaded topics and the help override for one
// command tree.
type Manager struct {
	topics       map[string]*Topic
	renderer     Renderer
	originalHelp func(*cobra.Command, []string)
}

// Initialize scans topicsFS for .md and .txt files, registers them as
// help topics, and extends rootCmd's help command so that
// "help <topic>" renders the document. Unknown arguments fall through
// to cobra's regular help.
func Initialize(rootCmd *cobra.Command, topicsFS fs.FS, renderer Renderer) (*Manager, error) {
	if renderer == nil {
		renderer = PlainRenderer{}
	}
	m := &Manager{
		topics:   make(map[string]*Topic),
		renderer: renderer,
	}
	if err := m.load(topicsFS); err != nil {
		return nil, err
	}
	m.install(rootCmd)
	return m, nil
}

func (m *Manager) load(topicsFS fs.FS) error {
	return fs.WalkDir(topicsFS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		var format string
		switch path.Ext(p) {
		case ".md":
			format = "markdown"
		case ".txt":
			format = "text"
		default:
			return nil
		}
		data, err := fs.ReadFile(topicsFS, p)
		if err != nil {
			return fmt.Errorf("reading topic %s: %w", p, err)
		}
		name := strings.TrimSuffix(path.Base(p), path.Ext(p))
		m.topics[name] = &Topic{
			Name:    name,
			Format:  format,
			Content: string(data),
		}
		return nil
	})
}

// GetTopic returns the topic registered under name, or nil.
func (m *Manager) GetTopic(name string) *Topic {
	return m.topics[name]
}

// TopicNames returns the registered topic names, sorted.
func (m *Manager) TopicNames() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Manager) install(rootCmd *cobra.Command) {
	m.originalHelp = rootCmd.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: "Help provides help for any command or topic.\n" +
			"Run 'help topics' to list the available topics.",
		Run: func(cmd *cobra.Command, args []string) {
			m.runHelp(rootCmd, cmd, args)
		},
	}
	rootCmd.SetHelpCommand(helpCmd)
}

func (m *Manager) runHelp(rootCmd, helpCmd *cobra.Command, args []string) {
	if len(args) == 0 {
		m.originalHelp(rootCmd, args)
		return
	}
	if args[0] == "topics" {
		m.printTopicList(helpCmd)
		return
	}
	if topic := m.GetTopic(args[0]); topic != nil {
		fmt.Fprint(helpCmd.OutOrStdout(), m.renderer.Render(topic.Content, topic.Format))
		return
	}
	// Not a topic; resolve as a command the way cobra's help does.
	target, _, err := rootCmd.Find(args)
	if err != nil || target == nil {
		fmt.Fprintf(helpCmd.OutOrStderr(), "Unknown help topic or command: %q\n", args[0])
		m.printTopicList(helpCmd)
		return
	}
	m.originalHelp(target, args)
}

func (m *Manager) printTopicList(cmd *cobra.Command) {
	names := m.TopicNames()
	if len(names) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No help topics available.")
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Available help topics:")
	for _, name := range names {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
	}
}
