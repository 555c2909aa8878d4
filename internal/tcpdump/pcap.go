package tcpdump

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	log "github.com/sirupsen/logrus"
)

// packetSource is satisfied by both pcapgo.Reader and pcapgo.NgReader.
type packetSource interface {
	ReadPacketData() ([]byte, gopacket.CaptureInfo, error)
	LinkType() layers.LinkType
}

// PcapLineReader renders the packets of a pcap or pcapng file as
// tcpdump text lines, one packet at a time, so a capture can go through
// the same line pipeline as a text dump.
type PcapLineReader struct {
	src     packetSource
	buf     bytes.Buffer
	err     error
	packets int
}

// NewPcapLineReader reads the pcap file header from r.
func NewPcapLineReader(r io.Reader) (*PcapLineReader, error) {
	src, err := pcapgo.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read pcap header: %w", err)
	}
	return &PcapLineReader{src: src}, nil
}

// NewPcapNgLineReader reads the pcapng section header and first
// interface description from r.
func NewPcapNgLineReader(r io.Reader) (*PcapLineReader, error) {
	src, err := pcapgo.NewNgReader(r, pcapgo.DefaultNgReaderOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to read pcapng header: %w", err)
	}
	return &PcapLineReader{src: src}, nil
}

// Read implements io.Reader.
func (p *PcapLineReader) Read(b []byte) (int, error) {
	for p.buf.Len() == 0 {
		if p.err != nil {
			return 0, p.err
		}
		p.next()
	}
	return p.buf.Read(b)
}

// next decodes one packet into the buffer, or records the read error.
// A record cut short at the end of the file, as left by an interrupted
// capture, ends the input.
func (p *PcapLineReader) next() {
	data, ci, err := p.src.ReadPacketData()
	if errors.Is(err, io.ErrUnexpectedEOF) {
		log.WithField("packets", p.packets).Warn("Capture file is truncated, ignoring the last partial packet")
		p.err = io.EOF
		return
	}
	if err != nil {
		p.err = err
		return
	}
	p.packets++

	pkt := gopacket.NewPacket(data, p.src.LinkType(), gopacket.DecodeOptions{Lazy: true, NoCopy: true})
	p.buf.WriteString(ci.Timestamp.UTC().Format(ClockLayout))
	p.buf.WriteByte(' ')
	p.buf.WriteString(FormatPacket(pkt, ci.Length))
	p.buf.WriteByte('\n')
}

// FormatPacket renders the part of a tcpdump line that follows the
// clock. Only IPv4 packets produce an "IP" line; other packets get a
// short description that the line parser will not match.
func FormatPacket(pkt gopacket.Packet, length int) string {
	ipLayer := pkt.Layer(layers.LayerTypeIPv4)
	if ipLayer == nil {
		if ip6 := pkt.Layer(layers.LayerTypeIPv6); ip6 != nil {
			v6 := ip6.(*layers.IPv6)
			return fmt.Sprintf("IP6 %s > %s: length %d", v6.SrcIP, v6.DstIP, length)
		}
		return fmt.Sprintf("unknown packet, length %d", length)
	}
	ip := ipLayer.(*layers.IPv4)

	if tcpLayer := pkt.Layer(layers.LayerTypeTCP); tcpLayer != nil {
		tcp := tcpLayer.(*layers.TCP)
		return fmt.Sprintf("IP %s.%d > %s.%d: Flags [%s], seq %d, win %d, length %d",
			ip.SrcIP, tcp.SrcPort, ip.DstIP, tcp.DstPort, tcpFlags(tcp), tcp.Seq, tcp.Window, len(tcp.Payload))
	}

	if udpLayer := pkt.Layer(layers.LayerTypeUDP); udpLayer != nil {
		udp := udpLayer.(*layers.UDP)
		return fmt.Sprintf("IP %s.%d > %s.%d: UDP, length %d",
			ip.SrcIP, udp.SrcPort, ip.DstIP, udp.DstPort, len(udp.Payload))
	}

	return fmt.Sprintf("IP %s > %s: %s, length %d", ip.SrcIP, ip.DstIP, ip.Protocol, length)
}

// tcpFlags uses tcpdump's flag letters, with "." for ACK.
func tcpFlags(tcp *layers.TCP) string {
	var sb strings.Builder
	if tcp.SYN {
		sb.WriteByte('S')
	}
	if tcp.FIN {
		sb.WriteByte('F')
	}
	if tcp.RST {
		sb.WriteByte('R')
	}
	if tcp.PSH {
		sb.WriteByte('P')
	}
	if tcp.URG {
		sb.WriteByte('U')
	}
	if tcp.ACK {
		sb.WriteByte('.')
	}
	if sb.Len() == 0 {
		return "none"
	}
	return sb.String()
}
