// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

//go:build statsview

package statsview

import (
	"context"
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/jetsetilly/vcsaudio/logger"
)

// Address of the statsview server.
const Address = "localhost:12600"

const url = "/debug/statsview"

// Launch a new goroutine running the statsview. The server is stopped when
// the context is cancelled.
func Launch(ctx context.Context, output io.Writer) {
	viewer.SetConfiguration(viewer.WithAddr(Address))
	mgr := statsview.New()

	go func() {
		err := mgr.Start()
		if err != nil {
			logger.Log(logger.Allow, "statsview", err)
		}
	}()

	go func() {
		<-ctx.Done()
		mgr.Stop()
	}()

	fmt.Fprintf(output, "stats server available at %s%s\n", Address, url)
}

// Available returns true if a statsview is available to launch.
func Available() bool {
	return true
}
