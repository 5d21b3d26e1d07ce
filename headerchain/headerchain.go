// Package headerchain links downloaded block headers into a chain anchored at
// a checkpoint, checking each one with the network's difficulty verifier.
//
// The chain keeps every accepted header, including those on side branches.
// The tip is the accepted header with the most work since the anchor; on a
// tie the header seen first stays the tip.
//
// Headers whose parent is not known yet are still rejected, but they are
// held in an orphan pool for a while and connected as soon as the parent
// arrives.
package headerchain

import (
	"sync"
	"time"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/spvchain/chaincfg"
	"github.com/bsv-blockchain/spvchain/difficulty"
	"github.com/bsv-blockchain/spvchain/errors"
	"github.com/bsv-blockchain/spvchain/model"
	"github.com/bsv-blockchain/spvchain/settings"
	"github.com/bsv-blockchain/spvchain/ulogger"
	"github.com/bsv-blockchain/spvchain/util"
	"github.com/jellydator/ttlcache/v3"
)

const (
	defaultOrphanTTL = 10 * time.Minute

	// maxOrphanParents bounds the pool by distinct missing parents.
	maxOrphanParents = 1024
)

type HeaderChain struct {
	logger    ulogger.Logger
	params    *chaincfg.Params
	metrics   bool
	orphanTTL time.Duration

	mu      sync.RWMutex
	headers map[chainhash.Hash]*model.BlockHeader
	meta    map[chainhash.Hash]*model.BlockHeaderMeta
	orphans *ttlcache.Cache[chainhash.Hash, []*model.BlockHeader] // keyed by missing parent
	anchor  *model.BlockHeader
	tip     *model.BlockHeader
}

// Option configures a HeaderChain.
type Option func(*HeaderChain)

// WithMetrics turns the prometheus collectors on or off.
func WithMetrics(enabled bool) Option {
	return func(hc *HeaderChain) {
		hc.metrics = enabled
	}
}

// WithOrphanTTL sets how long a header with an unknown parent is kept. A
// zero or negative ttl disables the orphan pool.
func WithOrphanTTL(ttl time.Duration) Option {
	return func(hc *HeaderChain) {
		hc.orphanTTL = ttl
	}
}

// New returns a header chain anchored at the newest checkpoint of params at
// or below startHeight.
func New(logger ulogger.Logger, params *chaincfg.Params, startHeight uint32, opts ...Option) (*HeaderChain, error) {
	if params == nil {
		return nil, errors.NewInvalidArgumentError("[HeaderChain] chain params are required")
	}

	checkpoint, ok := params.CheckpointBefore(startHeight)
	if !ok {
		return nil, errors.NewNotFoundError("[HeaderChain] no %s checkpoint at or below height %d", params.Name, startHeight)
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	anchor := checkpoint.Header()
	anchorMeta := &model.BlockHeaderMeta{
		Height:    anchor.Height,
		ChainWork: util.CalculateWork(&chainhash.Hash{}, anchor.Bits.Uint32()),
	}

	hc := &HeaderChain{
		logger:    logger,
		params:    params,
		metrics:   true,
		orphanTTL: defaultOrphanTTL,
		headers:   map[chainhash.Hash]*model.BlockHeader{*anchor.Hash(): anchor},
		meta:      map[chainhash.Hash]*model.BlockHeaderMeta{*anchor.Hash(): anchorMeta},
		anchor:    anchor,
		tip:       anchor,
	}

	for _, opt := range opts {
		opt(hc)
	}

	if hc.orphanTTL > 0 {
		hc.orphans = ttlcache.New[chainhash.Hash, []*model.BlockHeader](
			ttlcache.WithTTL[chainhash.Hash, []*model.BlockHeader](hc.orphanTTL),
			ttlcache.WithCapacity[chainhash.Hash, []*model.BlockHeader](maxOrphanParents),
			ttlcache.WithDisableTouchOnHit[chainhash.Hash, []*model.BlockHeader](),
		)
	}

	if hc.metrics {
		initPrometheusMetrics()
		prometheusHeaderChainTipHeight.Set(float64(anchor.Height))
	}

	logger.Infof("[HeaderChain] %s chain anchored at checkpoint %d %s", params.Name, anchor.Height, anchor.Hash())

	return hc, nil
}

// NewFromSettings builds a header chain for the configured network and
// start height.
func NewFromSettings(logger ulogger.Logger, tSettings *settings.Settings) (*HeaderChain, error) {
	return New(logger, tSettings.ChainCfgParams, tSettings.HeaderChain.StartHeight,
		WithMetrics(tSettings.HeaderChain.MetricsEnabled),
		WithOrphanTTL(tSettings.HeaderChain.OrphanTTL),
	)
}

// Accept links header to its parent and verifies it. The header's height is
// assigned from the parent; the caller's value is ignored. It returns the
// stored header. A header that is already known is returned as is.
//
// A header with an unknown parent is rejected with ERR_BLOCK_NOT_FOUND and
// pooled. Pooled descendants of an accepted header are connected before
// Accept returns.
func (hc *HeaderChain) Accept(header *model.BlockHeader) (*model.BlockHeader, error) {
	if header == nil {
		return nil, errors.NewInvalidArgumentError("[HeaderChain] header is nil")
	}

	start := time.Now()

	hc.mu.Lock()
	defer hc.mu.Unlock()

	linked, err := hc.accept(header)

	if hc.metrics {
		prometheusHeaderChainAccept.Observe(time.Since(start).Seconds())
	}

	if err != nil {
		if errors.Is(err, errors.ErrBlockNotFound) {
			hc.addOrphan(header)
		}

		hc.reject(header, err)

		return nil, err
	}

	hc.connectOrphans(linked)

	return linked, nil
}

// reject counts a rejection and logs it at a level matching who is at
// fault: the peer for chain violations, nobody yet for fork points.
func (hc *HeaderChain) reject(header *model.BlockHeader, err error) {
	if hc.metrics {
		prometheusHeaderChainRejected.WithLabelValues(errorCode(err)).Inc()
	}

	switch {
	case errors.IsChainViolationError(err):
		hc.logger.Warnf("[HeaderChain] rejected header %s: %v", header.Hash(), err)
	case errors.IsForkPointError(err):
		hc.logger.Infof("[HeaderChain] header %s does not connect: %v", header.Hash(), err)
	case errors.IsRetryableError(err):
		hc.logger.Infof("[HeaderChain] header %s deferred: %v", header.Hash(), err)
	default:
		hc.logger.Errorf("[HeaderChain] could not check header %s: %v", header.Hash(), err)
	}
}

// addOrphan pools header under its missing parent.
func (hc *HeaderChain) addOrphan(header *model.BlockHeader) {
	if hc.orphans == nil {
		return
	}

	var siblings []*model.BlockHeader

	if item := hc.orphans.Get(*header.HashPrevBlock); item != nil {
		siblings = item.Value()

		for _, sibling := range siblings {
			if sibling.Hash().IsEqual(header.Hash()) {
				return
			}
		}
	}

	orphan := *header
	hc.orphans.Set(*header.HashPrevBlock, append(siblings, &orphan), ttlcache.DefaultTTL)

	hc.updateOrphanGauge()
}

// connectOrphans accepts the pooled descendants of parent, breadth first.
// Orphans that fail verification are dropped.
func (hc *HeaderChain) connectOrphans(parent *model.BlockHeader) {
	if hc.orphans == nil {
		return
	}

	queue := []*chainhash.Hash{parent.Hash()}

	for len(queue) > 0 {
		hash := queue[0]
		queue = queue[1:]

		item := hc.orphans.Get(*hash)
		if item == nil {
			continue
		}

		hc.orphans.Delete(*hash)

		for _, orphan := range item.Value() {
			linked, err := hc.accept(orphan)
			if err != nil {
				hc.reject(orphan, err)
				continue
			}

			queue = append(queue, linked.Hash())
		}
	}

	hc.updateOrphanGauge()
}

func (hc *HeaderChain) orphanCount() int {
	if hc.orphans == nil {
		return 0
	}

	n := 0
	for _, item := range hc.orphans.Items() {
		n += len(item.Value())
	}

	return n
}

func (hc *HeaderChain) updateOrphanGauge() {
	if hc.metrics {
		prometheusHeaderChainOrphans.Set(float64(hc.orphanCount()))
	}
}

// AcceptHeaders accepts headers in order, stopping at the first rejection.
// It returns the number accepted.
func (hc *HeaderChain) AcceptHeaders(headers []*model.BlockHeader) (int, error) {
	for i, header := range headers {
		if _, err := hc.Accept(header); err != nil {
			return i, err
		}
	}

	return len(headers), nil
}

func (hc *HeaderChain) accept(header *model.BlockHeader) (*model.BlockHeader, error) {
	hash := header.Hash()

	if existing, ok := hc.headers[*hash]; ok {
		return existing, nil
	}

	if header.HashPrevBlock == nil {
		return nil, errors.NewInvalidLinkageError("[HeaderChain][%s] header has no previous hash", hash)
	}

	parent, ok := hc.headers[*header.HashPrevBlock]
	if !ok {
		return nil, errors.NewBlockNotFoundError("[HeaderChain][%s] parent %s is not known", hash, header.HashPrevBlock)
	}

	linked := header.WithHeight(parent.Height + 1)

	if checkpoint, ok := hc.params.CheckpointAt(linked.Height); ok && !checkpoint.Hash.IsEqual(hash) {
		return nil, errors.NewCheckpointMismatchError("[HeaderChain][%s] checkpoint at height %d is %s", hash, linked.Height, checkpoint.Hash)
	}

	var transitionTime uint32
	if difficulty.IsBoundary(linked.Height, hc.params.DifficultyInterval) {
		transitionTime = hc.transitionTime(parent, linked.Height-hc.params.DifficultyInterval)
	}

	if err := hc.params.VerifyDifficulty.Verify(linked, parent, transitionTime); err != nil {
		return nil, err
	}

	meta := &model.BlockHeaderMeta{
		Height:    linked.Height,
		ChainWork: util.CalculateWork(hc.meta[*parent.Hash()].ChainWork, linked.Bits.Uint32()),
	}

	hc.headers[*hash] = linked
	hc.meta[*hash] = meta

	if meta.HasMoreWork(hc.meta[*hc.tip.Hash()]) {
		hc.tip = linked

		if hc.metrics {
			prometheusHeaderChainTipHeight.Set(float64(linked.Height))
		}
	}

	if hc.metrics {
		prometheusHeaderChainAccepted.Inc()
	}

	hc.logger.Debugf("[HeaderChain] accepted header %d %s", linked.Height, hash)

	return linked, nil
}

// transitionTime walks back from parent to the ancestor at height and
// returns its timestamp, or 0 when that ancestor was never downloaded.
func (hc *HeaderChain) transitionTime(parent *model.BlockHeader, height uint32) uint32 {
	ancestor := parent

	for ancestor.Height > height {
		if ancestor.IsAnchor() {
			return 0
		}

		next, ok := hc.headers[*ancestor.HashPrevBlock]
		if !ok {
			return 0
		}

		ancestor = next
	}

	return ancestor.Timestamp
}

// Tip returns the best header.
func (hc *HeaderChain) Tip() *model.BlockHeader {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	return hc.tip
}

// Anchor returns the checkpoint header the chain starts from.
func (hc *HeaderChain) Anchor() *model.BlockHeader {
	return hc.anchor
}

// Get returns an accepted header by hash.
func (hc *HeaderChain) Get(hash *chainhash.Hash) (*model.BlockHeader, bool) {
	if hash == nil {
		return nil, false
	}

	hc.mu.RLock()
	defer hc.mu.RUnlock()

	header, ok := hc.headers[*hash]

	return header, ok
}

// Meta returns the height and cumulative work of an accepted header.
func (hc *HeaderChain) Meta(hash *chainhash.Hash) (*model.BlockHeaderMeta, bool) {
	if hash == nil {
		return nil, false
	}

	hc.mu.RLock()
	defer hc.mu.RUnlock()

	meta, ok := hc.meta[*hash]

	return meta, ok
}

// Orphans returns the number of pooled headers whose parent is unknown.
func (hc *HeaderChain) Orphans() int {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	return hc.orphanCount()
}

// Len returns the number of headers held, the anchor included.
func (hc *HeaderChain) Len() int {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	return len(hc.headers)
}

func errorCode(err error) string {
	var uErr *errors.Error
	if errors.As(err, &uErr) {
		return uErr.Code().String()
	}

	return errors.ERR_UNKNOWN.String()
}
