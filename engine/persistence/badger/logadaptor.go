// Copyright 2025 coldtrack
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package badger

import (
	"fmt"
	"log/slog"
	"strings"
)

// logAdaptor makes a slog logger fit badger's logger interface.
type logAdaptor struct {
	logger *slog.Logger
}

func (la logAdaptor) Errorf(format string, args ...any) {
	la.logger.Error(sprint(format, args...))
}

func (la logAdaptor) Warningf(format string, args ...any) {
	la.logger.Warn(sprint(format, args...))
}

func (la logAdaptor) Infof(format string, args ...any) {
	la.logger.Info(sprint(format, args...))
}

func (la logAdaptor) Debugf(format string, args ...any) {
	la.logger.Debug(sprint(format, args...))
}

func sprint(format string, args ...any) string {
	return strings.TrimSuffix(fmt.Sprintf(format, args...), "\n")
}
