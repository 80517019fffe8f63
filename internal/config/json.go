package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and the
// string-friendly [Duration] type, so operators can write "5m" instead of
// nanosecond integers.
type StructuredJSONConfig struct {
	Bot struct {
		Token       string   `json:"token"`
		AdminID     int64    `json:"admin_id"`
		PollTimeout Duration `json:"poll_timeout"`
	} `json:"bot,omitempty"`

	Storage struct {
		DB struct {
			Path string `json:"path"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Encryption struct {
		Passphrase string `json:"passphrase"`
		SaltFile   string `json:"salt_file"`
		Iterations int    `json:"iterations"`
	} `json:"encryption,omitempty"`

	Session struct {
		TTL           Duration `json:"ttl"`
		SweepInterval Duration `json:"sweep_interval"`
	} `json:"session,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Bot: Bot{
			Token:       jsonCfg.Bot.Token,
			AdminID:     jsonCfg.Bot.AdminID,
			PollTimeout: time.Duration(jsonCfg.Bot.PollTimeout),
		},
		Storage: Storage{
			DB: DB{
				Path: jsonCfg.Storage.DB.Path,
			},
		},
		Encryption: Encryption{
			Passphrase: jsonCfg.Encryption.Passphrase,
			SaltFile:   jsonCfg.Encryption.SaltFile,
			Iterations: jsonCfg.Encryption.Iterations,
		},
		Session: Session{
			TTL:           time.Duration(jsonCfg.Session.TTL),
			SweepInterval: time.Duration(jsonCfg.Session.SweepInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
