package commands

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profilebeacon/beacon-go/pkg/discovery"
	"github.com/profilebeacon/beacon-go/pkg/service"
)

type chanBrowser struct {
	ch   chan *discovery.ProfileService
	once sync.Once
}

func (b *chanBrowser) BrowseProfiles(context.Context) (<-chan *discovery.ProfileService, error) {
	return b.ch, nil
}

func (b *chanBrowser) Stop() {
	b.once.Do(func() { close(b.ch) })
}

func TestRunScan(t *testing.T) {
	browser := &chanBrowser{ch: make(chan *discovery.ProfileService)}
	svc, err := service.NewScannerService(service.ScannerConfig{
		LocalProfile: "ff3f",
		InstanceName: "beacon-self",
		Browser:      browser,
		Logger:       logger,
	})
	require.NoError(t, err)

	seen := make(chan struct{}, 4)
	svc.OnResult(func(service.ResultEvent) { seen <- struct{}{} })

	ctx, cancel := context.WithCancel(context.Background())
	var buf bytes.Buffer
	done := make(chan error, 1)
	go func() { done <- RunScan(ctx, svc, &buf) }()

	browser.ch <- &discovery.ProfileService{InstanceName: "beacon-b", DisplayName: "Bea", PayloadHex: "ffff"}
	browser.ch <- &discovery.ProfileService{InstanceName: "beacon-a", PayloadHex: "0300"}
	browser.ch <- &discovery.ProfileService{InstanceName: "beacon-c", PayloadHex: "xyz"}
	for i := 0; i < 3; i++ {
		<-seen
	}
	cancel()
	require.NoError(t, <-done)

	out := buf.String()
	assert.Contains(t, out, "Scanning as beacon-self")
	assert.Contains(t, out, "Bea (beacon-b):\nWith this user, you have this many matches: 14 out of 14")
	assert.Contains(t, out, "beacon-c: rejected:")
	assert.Contains(t, out, "PEER")
	assert.Less(t, bytes.LastIndex(buf.Bytes(), []byte("beacon-b")), bytes.LastIndex(buf.Bytes(), []byte("beacon-a")),
		"table sorted by score")
	assert.Equal(t, service.StateStopped, svc.State())
}

func TestPrintResultTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	printResultTable(&buf, nil)
	assert.Equal(t, "No peers scored.\n", buf.String())
}
