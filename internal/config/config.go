package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone = "Asia/Seoul"

	configPathEnv        = "PODCASTIFY_CONFIG"
	maxURLsEnv           = "MAX_URLS"
	generatorEndpointEnv = "GENERATOR_ENDPOINT"
	r2AccessKeyEnv       = "R2_ACCESS_KEY_ID"
	r2SecretKeyEnv       = "R2_SECRET_ACCESS_KEY"
	r2CustomDomainEnv    = "R2_CUSTOM_DOMAIN"
	r2DevSubdomainEnv    = "R2_DEV_SUBDOMAIN"
	twitterKeyEnv        = "TWITTER_API_KEY"
	twitterSecretEnv     = "TWITTER_API_SECRET"
	twitterTokenEnv      = "TWITTER_ACCESS_TOKEN"
	twitterTokenSecEnv   = "TWITTER_ACCESS_TOKEN_SECRET"
	oneSignalAppIDEnv    = "ONESIGNAL_APP_ID"
	oneSignalAPIKeyEnv   = "ONESIGNAL_REST_API_KEY"
)

// Config holds high-level settings required across the application.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Fetcher   FetcherConfig   `yaml:"fetcher"`
	Files     FilesConfig     `yaml:"files"`
	Generator GeneratorConfig `yaml:"generator"`
	Storage   StorageConfig   `yaml:"storage"`
	Social    SocialConfig    `yaml:"social"`
	Push      PushConfig      `yaml:"push"`
	Compose   ComposeConfig   `yaml:"compose"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SiteConfig describes the news section page and its headline markup.
type SiteConfig struct {
	SectionURL      string `yaml:"sectionUrl"`
	Origin          string `yaml:"origin"`
	PrimaryMarker   string `yaml:"primaryMarker"`
	SecondaryMarker string `yaml:"secondaryMarker"`
	ArticleToken    string `yaml:"articleToken"`
	MaxHeadlines    int    `yaml:"maxHeadlines"`
}

// FetcherConfig tunes the headless browser fetch.
type FetcherConfig struct {
	NavigationTimeoutSec int    `yaml:"navigationTimeoutSec"`
	SettleDelayMs        int    `yaml:"settleDelayMs"`
	UserAgent            string `yaml:"userAgent"`
	AcceptLanguage       string `yaml:"acceptLanguage"`
}

// NavigationTimeout resolves the fetch timeout as a duration.
func (f FetcherConfig) NavigationTimeout() time.Duration {
	return time.Duration(f.NavigationTimeoutSec) * time.Second
}

// SettleDelay resolves the post-navigation settle delay.
func (f FetcherConfig) SettleDelay() time.Duration {
	return time.Duration(f.SettleDelayMs) * time.Millisecond
}

// FilesConfig locates the durable pipeline files.
type FilesConfig struct {
	URLFile       string `yaml:"urlFile"`
	HeadlineFile  string `yaml:"headlineFile"`
	TranscriptDir string `yaml:"transcriptDir"`
}

// GeneratorConfig defines how to contact the podcast generation service.
type GeneratorConfig struct {
	Endpoint string `yaml:"endpoint"`
	TTSModel string `yaml:"ttsModel"`
	Longform bool   `yaml:"longform"`
}

// StorageConfig describes the R2 bucket receiving finished artifacts.
type StorageConfig struct {
	Endpoint        string `yaml:"endpoint"`
	Bucket          string `yaml:"bucket"`
	AccessKeyID     string `yaml:"accessKeyId"`
	SecretAccessKey string `yaml:"secretAccessKey"`
	CustomDomain    string `yaml:"customDomain"`
	DevSubdomain    string `yaml:"devSubdomain"`
}

// Configured reports whether upload credentials are present.
func (s StorageConfig) Configured() bool {
	return s.AccessKeyID != "" && s.SecretAccessKey != ""
}

// SocialConfig wires OAuth1 user-context credentials for posting.
type SocialConfig struct {
	Endpoint          string `yaml:"endpoint"`
	APIKey            string `yaml:"apiKey"`
	APISecret         string `yaml:"apiSecret"`
	AccessToken       string `yaml:"accessToken"`
	AccessTokenSecret string `yaml:"accessTokenSecret"`
}

// Configured reports whether all four posting credentials are present.
func (s SocialConfig) Configured() bool {
	return s.APIKey != "" && s.APISecret != "" && s.AccessToken != "" && s.AccessTokenSecret != ""
}

// PushConfig wires the OneSignal application and delivery target.
type PushConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AppID     string `yaml:"appId"`
	APIKey    string `yaml:"apiKey"`
	TargetURL string `yaml:"targetUrl"`
}

// Configured reports whether push credentials are present.
func (p PushConfig) Configured() bool {
	return p.AppID != "" && p.APIKey != ""
}

// ComposeConfig holds the fixed promotional template pieces.
type ComposeConfig struct {
	SiteURL  string `yaml:"siteUrl"`
	Hashtags string `yaml:"hashtags"`
}

// SchedulerConfig defines when the daily pipeline should run.
type SchedulerConfig struct {
	CronExpression string         `yaml:"cronExpression"`
	Timezone       string         `yaml:"timezone"`
	location       *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// LoggingConfig controls console log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(maxURLsEnv); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Site.MaxHeadlines = n
		} else {
			log.Printf("config: ignoring invalid %s=%q", maxURLsEnv, v)
		}
	}

	if v := os.Getenv(generatorEndpointEnv); v != "" {
		c.Generator.Endpoint = v
	}

	if v := os.Getenv(r2AccessKeyEnv); v != "" {
		c.Storage.AccessKeyID = v
	}
	if v := os.Getenv(r2SecretKeyEnv); v != "" {
		c.Storage.SecretAccessKey = v
	}
	if v := os.Getenv(r2CustomDomainEnv); v != "" {
		c.Storage.CustomDomain = v
	}
	if v := os.Getenv(r2DevSubdomainEnv); v != "" {
		c.Storage.DevSubdomain = v
	}

	if v := os.Getenv(twitterKeyEnv); v != "" {
		c.Social.APIKey = v
	}
	if v := os.Getenv(twitterSecretEnv); v != "" {
		c.Social.APISecret = v
	}
	if v := os.Getenv(twitterTokenEnv); v != "" {
		c.Social.AccessToken = v
	}
	if v := os.Getenv(twitterTokenSecEnv); v != "" {
		c.Social.AccessTokenSecret = v
	}

	if v := os.Getenv(oneSignalAppIDEnv); v != "" {
		c.Push.AppID = v
	}
	if v := os.Getenv(oneSignalAPIKeyEnv); v != "" {
		c.Push.APIKey = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Site.SectionURL != "" {
		base.Site.SectionURL = override.Site.SectionURL
	}
	if override.Site.Origin != "" {
		base.Site.Origin = override.Site.Origin
	}
	if override.Site.PrimaryMarker != "" {
		base.Site.PrimaryMarker = override.Site.PrimaryMarker
	}
	if override.Site.SecondaryMarker != "" {
		base.Site.SecondaryMarker = override.Site.SecondaryMarker
	}
	if override.Site.ArticleToken != "" {
		base.Site.ArticleToken = override.Site.ArticleToken
	}
	if override.Site.MaxHeadlines > 0 {
		base.Site.MaxHeadlines = override.Site.MaxHeadlines
	}

	if override.Fetcher.NavigationTimeoutSec > 0 {
		base.Fetcher.NavigationTimeoutSec = override.Fetcher.NavigationTimeoutSec
	}
	if override.Fetcher.SettleDelayMs > 0 {
		base.Fetcher.SettleDelayMs = override.Fetcher.SettleDelayMs
	}
	if override.Fetcher.UserAgent != "" {
		base.Fetcher.UserAgent = override.Fetcher.UserAgent
	}
	if override.Fetcher.AcceptLanguage != "" {
		base.Fetcher.AcceptLanguage = override.Fetcher.AcceptLanguage
	}

	if override.Files.URLFile != "" {
		base.Files.URLFile = override.Files.URLFile
	}
	if override.Files.HeadlineFile != "" {
		base.Files.HeadlineFile = override.Files.HeadlineFile
	}
	if override.Files.TranscriptDir != "" {
		base.Files.TranscriptDir = override.Files.TranscriptDir
	}

	if override.Generator.Endpoint != "" {
		base.Generator.Endpoint = override.Generator.Endpoint
	}
	if override.Generator.TTSModel != "" {
		base.Generator.TTSModel = override.Generator.TTSModel
	}
	if override.Generator.Longform {
		base.Generator.Longform = true
	}

	if override.Storage.Endpoint != "" {
		base.Storage.Endpoint = override.Storage.Endpoint
	}
	if override.Storage.Bucket != "" {
		base.Storage.Bucket = override.Storage.Bucket
	}
	if override.Storage.AccessKeyID != "" {
		base.Storage.AccessKeyID = override.Storage.AccessKeyID
	}
	if override.Storage.SecretAccessKey != "" {
		base.Storage.SecretAccessKey = override.Storage.SecretAccessKey
	}
	if override.Storage.CustomDomain != "" {
		base.Storage.CustomDomain = override.Storage.CustomDomain
	}
	if override.Storage.DevSubdomain != "" {
		base.Storage.DevSubdomain = override.Storage.DevSubdomain
	}

	if override.Social.Endpoint != "" {
		base.Social.Endpoint = override.Social.Endpoint
	}
	if override.Social.APIKey != "" {
		base.Social.APIKey = override.Social.APIKey
	}
	if override.Social.APISecret != "" {
		base.Social.APISecret = override.Social.APISecret
	}
	if override.Social.AccessToken != "" {
		base.Social.AccessToken = override.Social.AccessToken
	}
	if override.Social.AccessTokenSecret != "" {
		base.Social.AccessTokenSecret = override.Social.AccessTokenSecret
	}

	if override.Push.Endpoint != "" {
		base.Push.Endpoint = override.Push.Endpoint
	}
	if override.Push.AppID != "" {
		base.Push.AppID = override.Push.AppID
	}
	if override.Push.APIKey != "" {
		base.Push.APIKey = override.Push.APIKey
	}
	if override.Push.TargetURL != "" {
		base.Push.TargetURL = override.Push.TargetURL
	}

	if override.Compose.SiteURL != "" {
		base.Compose.SiteURL = override.Compose.SiteURL
	}
	if override.Compose.Hashtags != "" {
		base.Compose.Hashtags = override.Compose.Hashtags
	}

	if override.Scheduler.CronExpression != "" {
		base.Scheduler.CronExpression = override.Scheduler.CronExpression
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Site: SiteConfig{
			SectionURL:      "https://news.naver.com/section/101",
			Origin:          "https://news.naver.com",
			PrimaryMarker:   "sa_item",
			SecondaryMarker: "_SECTION_HEADLINE",
			ArticleToken:    "article",
			MaxHeadlines:    5,
		},
		Fetcher: FetcherConfig{
			NavigationTimeoutSec: 30,
			SettleDelayMs:        2000,
			UserAgent:            "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			AcceptLanguage:       "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7",
		},
		Files: FilesConfig{
			URLFile:       "data/urls/daily_urls.txt",
			HeadlineFile:  "data/urls/daily_headlines.json",
			TranscriptDir: "data/transcripts",
		},
		Generator: GeneratorConfig{
			Endpoint: "http://localhost:8787",
			TTSModel: "edge",
			Longform: true,
		},
		Storage: StorageConfig{
			Endpoint: "https://2d797e9348660f2d5a228739b19cd956.r2.cloudflarestorage.com",
			Bucket:   "daily-podcast",
		},
		Social: SocialConfig{
			Endpoint: "https://api.twitter.com/2/tweets",
		},
		Push: PushConfig{
			Endpoint:  "https://onesignal.com/api/v1/notifications",
			TargetURL: "https://dailynewspod.com",
		},
		Compose: ComposeConfig{
			SiteURL:  "https://dailynewspod.com",
			Hashtags: "#뉴스팟캐스트 #데일리뉴스",
		},
		Scheduler: SchedulerConfig{CronExpression: "0 6 * * *", Timezone: defaultTimezone, location: tz},
		Logging:   LoggingConfig{Level: "info"},
	}
}
