package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LocalesConfig holds the user-visible reply strings, keyed by language
// and message id. English is built in; a locales.yaml file can add
// languages or override single strings.
type LocalesConfig struct {
	Languages map[string]map[string]string `yaml:"languages"`
}

// LoadLocalesConfig loads locale strings from a YAML file.
func LoadLocalesConfig(configPath string) (*LocalesConfig, error) {
	paths := []string{configPath}
	if configPath == "" {
		paths = []string{
			"configs/locales.yaml",
			"./configs/locales.yaml",
			"/etc/gadobot/locales.yaml",
		}
		if execPath, err := os.Executable(); err == nil {
			paths = append(paths, filepath.Join(filepath.Dir(execPath), "configs", "locales.yaml"))
		}
	}

	var data []byte
	var loadedPath string
	for _, p := range paths {
		if p == "" {
			continue
		}
		if d, err := os.ReadFile(p); err == nil {
			data = d
			loadedPath = p
			break
		}
	}

	if data == nil {
		fmt.Println("[Config] No locales.yaml found, using built-in strings")
		return DefaultLocalesConfig(), nil
	}
	fmt.Printf("[Config] Loading locales from: %s\n", loadedPath)

	var config LocalesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse locales.yaml: %w", err)
	}
	config.fillDefaults()
	return &config, nil
}

// fillDefaults ensures the English strings are always complete.
func (c *LocalesConfig) fillDefaults() {
	if c.Languages == nil {
		c.Languages = make(map[string]map[string]string)
	}
	eng := c.Languages["eng"]
	if eng == nil {
		eng = make(map[string]string)
		c.Languages["eng"] = eng
	}
	for key, val := range englishStrings {
		if eng[key] == "" {
			eng[key] = val
		}
	}
}

// Get returns the string for a language, falling back to English and
// finally to the key itself.
func (c *LocalesConfig) Get(lang, key string) string {
	if m, ok := c.Languages[lang]; ok {
		if s := m[key]; s != "" {
			return s
		}
	}
	if s := c.Languages["eng"][key]; s != "" {
		return s
	}
	return key
}

// Format returns the string with {name} placeholders substituted.
func (c *LocalesConfig) Format(lang, key string, args map[string]string) string {
	s := c.Get(lang, key)
	for name, val := range args {
		s = strings.ReplaceAll(s, "{"+name+"}", val)
	}
	return s
}

// DefaultLocalesConfig returns the built-in English-only configuration.
func DefaultLocalesConfig() *LocalesConfig {
	c := &LocalesConfig{}
	c.fillDefaults()
	return c
}

var englishStrings = map[string]string{
	"start_message": "GadoBot {version}\nGroup helper: custom filters, moderation, rule backups.\nUse /help for the command list.",
	"help": "Commands:\n/help -filters — filter commands\n/help -mod — moderation commands\n/help -misc — everything else",
	"help_filters": "/filter <trigger> <response> — add a filter\n" +
		"/filter \"multi word trigger\" <response>\n" +
		"/filter r\"pattern\" <response> — regex filter\n" +
		"/filter <trigger> (as a reply to media) — media filter\n" +
		"/filters — list filters\n" +
		"/remove_filter <trigger>\n" +
		"/remove_all_filters\n" +
		"/export — backup filters to a .gbtp file\n" +
		"/import — restore filters from a .gbtp file (owner only)",
	"help_moderation": "/ban /unban /mute /unmute /kick [target] [duration] [reason]\n" +
		"/warn /unwarn [target] [reason]\n" +
		"/limitwarn [n] — show or set the warn limit\n" +
		"/checkhistory [target]\n" +
		"/blacklist /addblacklist /removeblacklist [target]\n" +
		"Targets: reply to a message, or give a numeric id. Durations: 7d, 12h, 30m.",
	"help_misc":               "/start /stats /stats_global /lang /kickme",
	"lang_help":               "Available languages: ru, en, uk, kk, de, fr\nUsage: /lang <code>",
	"lang_invalid":            "Unknown language: {lang}",
	"lang_set_success":        "Language set to {lang}",
	"stats_header":            "Chat stats for",
	"stats_name":              "Name",
	"stats_members":           "Members",
	"stats_username":          "Username",
	"global_stats_header":     "Global stats",
	"global_stats_chat_count": "Chats",
	"no_perm_profile":         "You need the change-info admin right to manage filters",
	"no_restmem_profile":      "You need the restrict-members admin right for that",
	"bot_no_perm_restrict_members": "I don't have the restrict-members permission in this chat",
	"filter_usage_text": "Usage: /filter <trigger> <response>, /filter \"multi word trigger\" <response> or /filter r\"pattern\" <response>",
	"filter_usage_media":         "Usage: reply to a photo/video/document/animation with /filter <trigger>",
	"already_exists":             "A filter with this trigger already exists",
	"filter_added_text":          "Added {filter_type} filter: {trigger}",
	"filter_added_media":         "Added media filter: {trigger}",
	"regex":                      "regex",
	"text":                       "text",
	"not_exists_filter_all":      "This chat has no filters",
	"filters_list":               "Filters in this chat:\n{filters_text}",
	"remove_filter_usage":        "Usage: /remove_filter <trigger>",
	"remove_filter_not_found":    "No such filter",
	"remove_filter_success":      "Removed filter: {trigger}",
	"remove_all_filters_success": "Removed {count} filters",
	"banned":                     "Banned {user_id} {timer} {reason}",
	"timer_forever":              "forever",
	"timer_for":                  "for {duration}",
	"muted":                      "Muted {user_id} {timer} {reason}",
	"warned":                     "Warned {user_id} ({count}/{warn_limit}) {reason}",
	"warn_ban":                   "Warn limit reached, {user_id} is banned",
	"unwarned":                   "Removed a warn from {user_id}",
	"warn_limit_current":         "Warn limit for this chat: {warn_limit}",
	"warn_limit_invalid":         "Warn limit must be a non-negative number",
	"warn_limit_set":             "Warn limit set to {warn_limit}",
	"blacklist_added":            "Blacklisted {user_id}",
	"blacklist_removed":          "Removed {user_id} from the blacklist",
	"blacklist_not_found":        "{user_id} is not blacklisted",
	"blacklist_empty":            "The blacklist is empty",
	"blacklist_list_header":      "Blacklisted users:\n{entries}",
	"unbanned":                   "Unbanned {user_id}",
	"unmuted":                    "Unmuted {user_id}",
	"kicked":                     "Kicked {user_id} {reason}",
	"history":                    "User {user_id}: warns {warns}/{warn_limit}, blacklisted: {blacklisted}",
	"mention_unreadable":         "I can't resolve {user_id}; reply to their message or use a numeric id",
	"target_missing":             "/dev/null is not a user",
	"cant_target_self":           "I can't do that to myself",
	"kickme_admin":               "Sorry, admins have to stay",
	"ban_failed":                 "Failed to ban user",
	"mute_failed":                "Failed to mute user",
	"unban_failed":               "Failed to unban user",
	"unmute_failed":              "Failed to unmute user",
	"kick_failed":                "Failed to kick user",
	"action_failed":              "Action failed, try again later",
	"export_caption":             "GBTP001: Backup file generated",
	"import_no_rights":           "GBTP MANAGMENT SYSTEM: NOT ENOUGH RIGHTS",
	"import_no_file": "GBTP MANAGMENT SYSTEM:\nPlease attach a backup file to import.\nHow to use: send /import with the .gbtp file attached",
	"import_bad_ext":     "GBTP MANAGMENT SYSTEM: Invalid file format. Please use .gbtp backup files",
	"import_unsupported": "GBTP MANAGMENT SYSTEM: This GBTP type is not supported",
	"import_failed":      "GBTP MANAGMENT SYSTEM: Import failed! Your chat db was wiped for stability:3",
	"import_success":     "GBTP MANAGMENT SYSTEM: Import successful!",
}
