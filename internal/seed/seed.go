package seed

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Run popula o catálogo de exames e as unidades quando as tabelas estão
// vazias. Idempotente: com dados existentes a rotina não toca em nada.
func Run(ctx context.Context, pool *pgxpool.Pool) error {
	if err := seedExams(ctx, pool); err != nil {
		return err
	}
	return seedUnits(ctx, pool)
}

func seedExams(ctx context.Context, pool *pgxpool.Pool) error {
	var n int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM exams`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	log.Printf("[seed] catálogo de exames vazio, inserindo padrão")
	_, err := pool.Exec(ctx, `
		INSERT INTO exams (name, description, duration, price, category, preparation, fasting_required, fasting_hours) VALUES
		('Hemograma Completo', 'Avaliação das células sanguíneas: hemácias, leucócitos e plaquetas.', 15, 45.00, 'Sangue', 'Não é necessário preparo especial.', false, 0),
		('Glicemia de Jejum', 'Dosagem de glicose no sangue para rastreio de diabetes.', 10, 25.00, 'Sangue', 'Jejum obrigatório de 8 horas. Água liberada.', true, 8),
		('Colesterol Total e Frações', 'Perfil lipídico completo: colesterol total, HDL, LDL e triglicerídeos.', 15, 60.00, 'Sangue', 'Jejum de 12 horas. Evitar bebida alcoólica na véspera.', true, 12),
		('TSH e T4 Livre', 'Avaliação da função da tireoide.', 15, 55.00, 'Sangue', 'Não é necessário preparo especial.', false, 0),
		('Urina Tipo 1 (EAS)', 'Exame físico, químico e microscópico da urina.', 10, 20.00, 'Urina', 'Coletar preferencialmente a primeira urina da manhã.', false, 0),
		('Ultrassonografia Abdominal Total', 'Avaliação por imagem de fígado, vesícula, pâncreas, baço e rins.', 30, 180.00, 'Imagem', 'Jejum de 8 horas e bexiga cheia no horário do exame.', true, 8),
		('Raio-X de Tórax', 'Radiografia do tórax em duas incidências (PA e perfil).', 15, 90.00, 'Imagem', 'Retirar objetos metálicos. Informar suspeita de gravidez.', false, 0),
		('Eletrocardiograma de Repouso', 'Registro da atividade elétrica do coração.', 20, 75.00, 'Cardiologia', 'Evitar cafeína nas 2 horas anteriores ao exame.', false, 0),
		('Mamografia Digital Bilateral', 'Rastreamento de câncer de mama por imagem.', 30, 220.00, 'Imagem', 'Não usar desodorante, talco ou creme na região no dia do exame.', false, 0),
		('Teste Ergométrico', 'Avaliação cardíaca sob esforço em esteira.', 45, 250.00, 'Cardiologia', 'Alimentação leve 2 horas antes. Usar roupas e calçados confortáveis.', false, 0)
	`)
	return err
}

func seedUnits(ctx context.Context, pool *pgxpool.Pool) error {
	var n int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM units`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	log.Printf("[seed] nenhuma unidade cadastrada, inserindo padrão")
	_, err := pool.Exec(ctx, `
		INSERT INTO units (name, city, address, neighborhood, phone) VALUES
		('Unidade Paulista', 'São Paulo', 'Av. Paulista, 1450', 'Bela Vista', '(11) 3250-1100'),
		('Unidade Pinheiros', 'São Paulo', 'Rua dos Pinheiros, 820', 'Pinheiros', '(11) 3815-2200'),
		('Unidade Centro', 'Campinas', 'Av. Francisco Glicério, 510', 'Centro', '(19) 3231-3300'),
		('Unidade Savassi', 'Belo Horizonte', 'Rua Pernambuco, 1322', 'Savassi', '(31) 3281-4400'),
		('Unidade Copacabana', 'Rio de Janeiro', 'Av. Nossa Senhora de Copacabana, 980', 'Copacabana', '(21) 2255-5500')
	`)
	return err
}
