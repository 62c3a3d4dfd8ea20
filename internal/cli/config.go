// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
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
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"fillmore-labs.com/nilopt/internal/config"
)

type configOptions struct {
	*globalOptions

	settings settingsFlags
}

func newConfigCommand(global *globalOptions) *cobra.Command {
	o := configOptions{globalOptions: global}

	cmd := &cobra.Command{
		Use:   "config [flags]",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE:  o.run,
	}

	o.settings.register(cmd.Flags())

	return cmd
}

func (o *configOptions) run(cmd *cobra.Command, _ []string) error {
	settings, threshold, err := o.settings.resolve(cmd, o.configFile)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)

	if err := enc.Encode(config.FileOf(settings, threshold)); err != nil {
		return err
	}

	return enc.Close()
}
