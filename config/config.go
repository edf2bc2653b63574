// Copyright (c) 2026 The HydroShare Project and its Contributors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// a type with parameters governing how the tool talks to HydroShare
type serviceConfig struct {
	// HydroShare host address (no scheme)
	Host string `json:"host" yaml:"host"`
	// whether TLS certificates are verified on HTTPS connections
	VerifyTLS bool `json:"verify_tls" yaml:"verify_tls"`
	// number of times authentication is attempted before giving up
	AuthAttempts int `json:"auth_attempts" yaml:"auth_attempts"`
	// timeout for individual HTTP requests (seconds); uploads of large
	// files can take a while, so be generous
	Timeout int `json:"timeout" yaml:"timeout"`
	// directory in which the creation journal and run manifests are kept
	DataDirectory string `json:"data_directory" yaml:"data_directory"`
}

// global config variables
var Service serviceConfig

// This struct performs the unmarshalling from the YAML config file and then
// copies its fields to the globals above.
type configFile struct {
	Service serviceConfig `yaml:"service"`
}

// This helper reads configuration data, returning an error indicating success
// or failure. All environment variables of the form ${ENV_VAR} are expanded.
func readConfig(bytes []byte) error {
	// Before we do anything else, expand any provided environment variables.
	bytes = []byte(os.ExpandEnv(string(bytes)))

	var conf configFile
	conf.Service = defaultService()
	err := yaml.Unmarshal(bytes, &conf)
	if err != nil {
		log.Printf("Couldn't parse configuration data: %s\n", err)
		return err
	}

	// copy the config data into place
	Service = conf.Service

	return err
}

// the configuration used when no config file is given
func defaultService() serviceConfig {
	return serviceConfig{
		Host:          "www.hydroshare.org",
		VerifyTLS:     true,
		AuthAttempts:  3,
		Timeout:       300,
		DataDirectory: ".",
	}
}

// This helper validates the given service parameters, returning an
// error indicating success or failure.
func validateServiceParameters(params serviceConfig) error {
	if params.Host == "" {
		return fmt.Errorf("No host was provided!")
	}
	if params.AuthAttempts <= 0 {
		return fmt.Errorf("Invalid auth_attempts: %d (must be positive)",
			params.AuthAttempts)
	}
	if params.Timeout <= 0 {
		return fmt.Errorf("Invalid timeout: %d (must be positive)",
			params.Timeout)
	}
	if params.DataDirectory == "" {
		return fmt.Errorf("No data directory was provided!")
	}
	return nil
}

// Initializes the bulk creator configuration using the given YAML byte data.
// Passing a nil or empty slice selects the built-in defaults.
func Init(yamlData []byte) error {

	// Read the configuration from our YAML data.
	err := readConfig(yamlData)
	if err != nil {
		return err
	}

	// Validate the configuration.
	return validateServiceParameters(Service)
}
