// Copyright 2025 The gVisor Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"flag"
	"fmt"
	"reflect"
	"strconv"

	"github.com/BurntSushi/toml"
)

// RegisterFlags registers flags used to populate Config.
func RegisterFlags(flagSet *flag.FlagSet) {
	flagSet.Bool("debug", false, "enable debug logging.")
	flagSet.String("log", "", "file path where internal debug information is written, default is stderr. %COMMAND%, %TIMESTAMP% and %PID% are expanded.")
	flagSet.Var(logFormatPtr(LogFormatText), "log-format", "log format: text (default) or json.")
	flagSet.String("config", "", "TOML file with configuration. Flags given on the command line take precedence.")
}

// NewFromFlags creates a new Config with values coming from command line
// flags and, if --config is set, from the TOML file it names.
func NewFromFlags(flagSet *flag.FlagSet) (*Config, error) {
	conf := &Config{Stress: DefaultStress()}
	if err := conf.setFromFlags(flagSet, func(string) bool { return true }); err != nil {
		return nil, err
	}

	if conf.File != "" {
		md, err := toml.DecodeFile(conf.File, conf)
		if err != nil {
			return nil, fmt.Errorf("error reading config file %q: %w", conf.File, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown keys in config file %q: %v", conf.File, undecoded)
		}
		// Explicit flags override the file.
		set := make(map[string]bool)
		flagSet.Visit(func(f *flag.Flag) { set[f.Name] = true })
		if err := conf.setFromFlags(flagSet, func(name string) bool { return set[name] }); err != nil {
			return nil, err
		}
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c *Config) setFromFlags(flagSet *flag.FlagSet, include func(name string) bool) error {
	obj := reflect.ValueOf(c).Elem()
	st := obj.Type()
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		name, ok := f.Tag.Lookup("flag")
		if !ok || !include(name) {
			continue
		}
		fl := flagSet.Lookup(name)
		if fl == nil {
			panic(fmt.Sprintf("Flag %q not found", name))
		}
		getter, ok := fl.Value.(flag.Getter)
		if !ok {
			return fmt.Errorf("flag %q has no value getter", name)
		}
		obj.Field(i).Set(reflect.ValueOf(getter.Get()))
	}
	return nil
}

// ToFlags returns a slice of flags that correspond to the given Config.
// Settings without a flag, such as Stress, are not included.
func (c *Config) ToFlags() []string {
	var rv []string

	// Construct a temporary set for default plumbing.
	flagSet := flag.NewFlagSet("tmp", flag.ContinueOnError)
	RegisterFlags(flagSet)

	obj := reflect.ValueOf(c).Elem()
	st := obj.Type()
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		name, ok := f.Tag.Lookup("flag")
		if !ok {
			continue
		}
		val := getVal(obj.Field(i))

		fl := flagSet.Lookup(name)
		if fl == nil {
			panic(fmt.Sprintf("Flag %q not found", name))
		}
		if val == fl.DefValue {
			continue
		}
		rv = append(rv, fmt.Sprintf("--%s=%s", fl.Name, val))
	}
	return rv
}

func getVal(field reflect.Value) string {
	if str, ok := field.Addr().Interface().(fmt.Stringer); ok {
		return str.String()
	}
	switch field.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(field.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(field.Int(), 10)
	case reflect.String:
		return field.String()
	default:
		panic("unknown type " + field.Kind().String())
	}
}
