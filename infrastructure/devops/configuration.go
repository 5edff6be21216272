package devops

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

type SlackConfig struct {
	SigningSecret string `yaml:"signingSecret"`
	BotToken      string `yaml:"botToken"`
	PunchChannel  string `yaml:"punchChannel"`
	InfoChannel   string `yaml:"infoChannel"`
	ErrorChannel  string `yaml:"errorChannel"`
}

type ReportConfig struct {
	Bucket    string   `yaml:"bucket"`
	EmailFrom string   `yaml:"emailFrom"`
	EmailTo   []string `yaml:"emailTo"`
}

type AppConfig struct {
	Addr          string       `yaml:"addr"`
	DSN           string       `yaml:"dsn"`
	SigningSecret string       `yaml:"signingSecret"` // base64, JWT HS256
	Timezone      string       `yaml:"timezone"`
	WorkDays      []string     `yaml:"workDays"`
	ShiftMinutes  int          `yaml:"shiftMinutes"`
	Holidays      []string     `yaml:"holidays"` // local days, 2006-01-02
	Slack         SlackConfig  `yaml:"slack"`
	Report        ReportConfig `yaml:"report"`
}

var (
	once    sync.Once
	cfg     *AppConfig
	loadErr error
)

// LoadAppConfig reads configuration once per process: from the file
// named by PUNCHDECK_CONFIG when set, otherwise from the SSM parameter
// "punchdeck". DSN and Slack secrets can always be overridden through
// the environment.
func LoadAppConfig(ctx context.Context) (*AppConfig, error) {
	once.Do(func() {
		var raw []byte

		if path := os.Getenv("PUNCHDECK_CONFIG"); path != "" {
			raw, loadErr = os.ReadFile(path)
			if loadErr != nil {
				loadErr = fmt.Errorf("read config file: %w", loadErr)
				return
			}
		} else {
			awsCfg, err := config.LoadDefaultConfig(ctx)
			if err != nil {
				loadErr = fmt.Errorf("load aws config: %w", err)
				return
			}

			client := ssm.NewFromConfig(awsCfg)
			out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
				Name:           aws.String("punchdeck"),
				WithDecryption: aws.Bool(true),
			})
			if err != nil {
				loadErr = fmt.Errorf("get parameter: %w", err)
				return
			}
			raw = []byte(*out.Parameter.Value)
		}

		var parsed AppConfig
		if err := yaml.Unmarshal(raw, &parsed); err != nil {
			loadErr = fmt.Errorf("unmarshal yaml: %w", err)
			return
		}

		applyDefaults(&parsed)
		applyEnvOverrides(&parsed)
		cfg = &parsed
	})

	return cfg, loadErr
}

func applyDefaults(c *AppConfig) {
	if c.Addr == "" {
		c.Addr = "0.0.0.0:8090"
	}
	if c.Timezone == "" {
		c.Timezone = "America/Vancouver"
	}
	if len(c.WorkDays) == 0 {
		c.WorkDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	}
	if c.ShiftMinutes == 0 {
		c.ShiftMinutes = 480
	}
}

func applyEnvOverrides(c *AppConfig) {
	if v := os.Getenv("DSN"); v != "" {
		c.DSN = v
	}
	if v := os.Getenv("PUNCHDECK_SIGNING_SECRET"); v != "" {
		c.SigningSecret = v
	}
	if v := os.Getenv("SLACK_SIGNING_SECRET"); v != "" {
		c.Slack.SigningSecret = v
	}
	if v := os.Getenv("SLACK_BOT_TOKEN"); v != "" {
		c.Slack.BotToken = v
	}
	if v := os.Getenv("SLACK_PUNCH_CHANNEL"); v != "" {
		c.Slack.PunchChannel = v
	}
}

// WorkWeek maps the configured day names onto weekdays. Unknown names
// are skipped rather than failing startup.
func (c *AppConfig) WorkWeek() map[time.Weekday]bool {
	names := map[string]time.Weekday{
		"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
		"wednesday": time.Wednesday, "thursday": time.Thursday,
		"friday": time.Friday, "saturday": time.Saturday,
	}
	week := make(map[time.Weekday]bool, len(c.WorkDays))
	for _, name := range c.WorkDays {
		if wd, ok := names[strings.ToLower(strings.TrimSpace(name))]; ok {
			week[wd] = true
		}
	}
	return week
}

// HolidaySet indexes the configured holidays for schedule lookups.
func (c *AppConfig) HolidaySet() map[string]bool {
	if len(c.Holidays) == 0 {
		return nil
	}
	set := make(map[string]bool, len(c.Holidays))
	for _, d := range c.Holidays {
		set[strings.TrimSpace(d)] = true
	}
	return set
}
