package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
)

// ErrCoinNotFound indica que ninguna estrategia de resolución encontró la moneda.
// El llamador no debe sustituir el precio silenciosamente.
var ErrCoinNotFound = errors.New("moneda no encontrada o precio no disponible")

// marketClient son las operaciones del proveedor de precios que usa el servicio
type marketClient interface {
	MarketsByIDs(ids []string) ([]models.MarketCoin, error)
	MarketsPage(perPage int) ([]models.MarketCoin, error)
	CoinsList() ([]models.CoinListEntry, error)
	SimplePrices(coinIDs []string) (models.SimplePrices, error)
}

// resolverFunc intenta resolver un ticker; devuelve nil cuando no hay coincidencia
type resolverFunc func(symbol string) (*models.CoinPrice, error)

type cacheEntry struct {
	data      models.CoinPrice
	fetchedAt time.Time
}

// PriceService resuelve tickers a precio/nombre/coin_id con una cadena de
// estrategias ordenadas y una caché con ventana de frescura fija.
type PriceService struct {
	client    marketClient
	ttl       time.Duration
	now       func() time.Time
	mu        sync.RWMutex
	cache     map[string]cacheEntry
	resolvers []resolverFunc
}

func NewPriceService(client marketClient, ttl time.Duration) *PriceService {
	s := &PriceService{
		client: client,
		ttl:    ttl,
		now:    time.Now,
		cache:  make(map[string]cacheEntry),
	}
	// El orden importa: primero la consulta barata, el directorio completo al final
	s.resolvers = []resolverFunc{
		s.resolveAsCanonicalID,
		s.resolveByMarketScan,
		s.resolveByDirectory,
	}
	return s
}

// GetCoinPrice devuelve precio, nombre y coin_id para un ticker.
// Primero la caché, luego cada estrategia en orden; la primera que acierta gana.
func (s *PriceService) GetCoinPrice(symbol string) (models.CoinPrice, error) {
	key := strings.ToLower(strings.TrimSpace(symbol))

	s.mu.RLock()
	cached, exists := s.cache[key]
	s.mu.RUnlock()
	if exists && s.now().Sub(cached.fetchedAt) < s.ttl {
		return cached.data, nil
	}

	for _, resolve := range s.resolvers {
		result, err := resolve(key)
		if err != nil {
			log.Printf("Estrategia de resolución falló para %s: %v", symbol, err)
			continue
		}
		if result == nil {
			continue
		}

		s.mu.Lock()
		s.cache[key] = cacheEntry{data: *result, fetchedAt: s.now()}
		s.mu.Unlock()
		return *result, nil
	}

	return models.CoinPrice{}, fmt.Errorf("%w: %s", ErrCoinNotFound, symbol)
}

// BatchPrices obtiene precios actuales para varios coin_ids en una sola llamada
func (s *PriceService) BatchPrices(coinIDs []string) (models.SimplePrices, error) {
	return s.client.SimplePrices(coinIDs)
}

// resolveAsCanonicalID interpreta el ticker como id canónico del proveedor
func (s *PriceService) resolveAsCanonicalID(symbol string) (*models.CoinPrice, error) {
	coins, err := s.client.MarketsByIDs([]string{symbol})
	if err != nil {
		return nil, err
	}
	if len(coins) != 1 {
		return nil, nil
	}
	coin := coins[0]
	return &models.CoinPrice{
		Price:  coin.CurrentPrice,
		Name:   coin.Name,
		CoinID: coin.ID,
	}, nil
}

// resolveByMarketScan recorre el listado de mercado buscando el ticker
func (s *PriceService) resolveByMarketScan(symbol string) (*models.CoinPrice, error) {
	coins, err := s.client.MarketsPage(250)
	if err != nil {
		return nil, err
	}
	for _, coin := range coins {
		if strings.EqualFold(coin.Symbol, symbol) {
			return &models.CoinPrice{
				Price:  coin.CurrentPrice,
				Name:   coin.Name,
				CoinID: coin.ID,
			}, nil
		}
	}
	return nil, nil
}

// resolveByDirectory busca en el directorio completo y luego pide el precio puntual
func (s *PriceService) resolveByDirectory(symbol string) (*models.CoinPrice, error) {
	list, err := s.client.CoinsList()
	if err != nil {
		return nil, err
	}

	var match *models.CoinListEntry
	for i := range list {
		if strings.EqualFold(list[i].Symbol, symbol) {
			match = &list[i]
			break
		}
	}
	if match == nil {
		return nil, nil
	}

	prices, err := s.client.SimplePrices([]string{match.ID})
	if err != nil {
		return nil, err
	}
	price, ok := prices.USD(match.ID)
	if !ok || price == 0 {
		return nil, nil
	}

	return &models.CoinPrice{
		Price:  price,
		Name:   match.Name,
		CoinID: match.ID,
	}, nil
}
